// Package chat groups the chat transports that feed events into the
// dispatcher. Telegram is the only transport today.
package chat
