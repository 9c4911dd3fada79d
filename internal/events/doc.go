// Package events carries conversation lifecycle notifications from the core
// session engine to interested observers such as metrics and logging.
//
// The engine emits events without knowing which handlers exist, so the core
// package does not depend on the metrics stack. The primary components are:
// - Event: a single lifecycle notification
// - EventHandler: interface for components that consume events
// - EventEmitter: interface for components that publish events
package events
