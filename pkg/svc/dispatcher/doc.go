// Package dispatcher turns inbound chat events into results.
//
// Every event runs through the same ordered steps: the received metric is
// recorded, the stage chain (authorization, then rate limiting) may
// short-circuit, the command is routed, and failures are converted into
// user-safe text plus an error metric. Latency is observed on every exit
// path, including unauthorized and rate limited ones.
//
// Results are transport neutral; a chat adapter renders Title, Body and
// Actions and feeds action ids back as callback events.
package dispatcher
