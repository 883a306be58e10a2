// Package mocks provides hand-written test doubles for service interfaces.
// Each mock records its calls and lets tests override behaviour through
// function fields.
package mocks
