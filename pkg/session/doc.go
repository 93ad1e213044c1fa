/*
Package session keeps named, long-lived simulations in memory.

Each session owns one hexsim.StackManager. Calls for the same session are
serialized with a per-session lock, so a batch of actions is never interleaved
with another caller's batch. Lock entries are reference counted and dropped
once no caller holds them.
*/
package session
