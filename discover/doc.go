/*
Package discover finds the pages of an app and mounts them on a router.

Every directory below an app's pages directory is one page, named after the directory.
Go cannot load code at runtime, so each page registers a Factory in a Registry,
usually from a file generated by "webbot update".

Two backends mount the pages found:
Mux, on the gorilla/mux based router.Router, and ServeMux, on an *http.ServeMux.
Either way, the page named Home answers /Home/.
*/
package discover
