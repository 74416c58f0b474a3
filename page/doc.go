/*
Package page builds the trees of URL-routed screens.

Every page is a root handler with two children:
the mainControl framing the page, and the contentControl filling the frame's pageContents slot.

	home
	home-mainControl
	home-contentControl

Requesting the root renders the whole document.
Requesting either control renders only its markup, for the client to swap in place.
*/
package page
