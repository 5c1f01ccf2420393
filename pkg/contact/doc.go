// Package contact implements the contact submission endpoint: input
// validation, synchronous mail delivery to the administrator and
// fire-and-forget Telegram status notifications.
package contact
