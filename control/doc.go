/*
Package control renders sections of a page as [dispatch.Handler]s.

A [*Control] pairs a node of a dispatch tree with a [View].
Each request it renders runs the same flow:

 1. BuildUI constructs the [*UI].
 2. InitUI adds what the template does not declare, i.e., filling slots.
 3. An auto-reloading control schedules the client to request it again.
 4. The processor for the request's method runs, if the request is valid for it.
 5. SetUIData populates the UI with the data to display.
 6. A viewer who cannot edit gets a UI that is not editable.
 7. The UI renders, and the first control rendering for a response attaches every script.

Failed validation is not an error: processing is skipped and the UI still renders.

[Element] is the View doing nothing, meant for embedding.
[Template] is the View loading a template through the http/template Parser;
every control it names with {{ control "name" }} becomes a child of its node.
*/
package control
