// Package cli defines the contact-backend command tree: serve runs the
// HTTP API together with the Telegram poller, version prints build info.
package cli
