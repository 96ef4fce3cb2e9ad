// Package tasks runs the translation pipeline: a single outstanding request against a
// [services.Translator] with debounce, supersession, a hard timeout and a session cache.
//
// # State Machine
//
// [Machine] is driven by bubbletea messages. [Machine.Update] is the only method that
// mutates it and must be called from one goroutine (the program loop). Commands returned
// by Update run on their own goroutines and report back by returning messages.
//
//	Idle --Submit--> Pending --response--> Idle (Succeeded or Failed)
//	Pending --Submit--> Pending (previous request superseded)
//	Pending --Cancel/Reset--> Idle
//
// # Generations
//
// Every submit, cancel and reset increments the generation. Debounce, indicator and
// response messages carry the generation they were issued for; any message whose
// generation is not current is dropped. A superseded request therefore never produces
// an event and never writes the cache.
//
// # Events
//
// Observable output is a stream of [Event] values delivered in order to
// [MachineOpts.Observer]. [ChannelObserver] adapts a channel for callers that
// prefer to receive events that way.
//
// # Cache
//
// [Cache] holds the last successful translation. It is written only by a current
// response and cleared only by Reset.
package tasks
