// Package netio wraps the raw socket calls the main loop needs: a
// non-blocking listening socket, non-blocking client sockets and a poll(2)
// based readiness query. It targets Linux.
package netio
