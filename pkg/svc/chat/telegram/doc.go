// Package telegram adapts the Telegram Bot API to the dispatcher.
//
// Updates are received by long polling. Each update is handled in its own
// goroutine; updates from the same chat are serialized so one caller's
// conversation stays ordered while other chats proceed independently.
//
// Commands are answered with a new message. Button presses are dispatched
// and answered with a reply to the pressed message, which is never edited.
// Rejected presses only get a callback popup.
package telegram
