// Package mail delivers contact submissions to the administrator over SMTP,
// rendering an HTML body from an embedded template. One connection is opened
// per send; failures are reported to the caller, never retried here.
package mail
