/*
Package dispatch routes requests through a tree of handlers.

# Trees

A tree is declared with a [Blueprint]: a named handler type,
the fields and forms it reads or shares with its descendants,
and the blueprints of its children.
[Build] instantiates every declared child eagerly, exactly once,
and returns a [*Tree] holding the root [*Node].

Each node is identified by its accessor:
the dash-joined base names of every node from the root down to it.

	home
	home-mainControl
	home-contentControl
	home-contentControl-comments

# Routing

A [*Request] names its target in the "requestHandler" field
using that same dash-delimited syntax.
Routing consumes one segment per level:
the first segment must be the receiving node's base name (or empty, meaning the node itself),
the next segment selects a child and the request is forwarded to it.
When no segments remain, the node is the target:
authorization is checked and, on success, the node's [Handler] renders the response body.

A "requestHandler" field carrying several values fans out:
each value is routed against an isolated copy of the request, in order,
and the bodies are collected into one JSON array with status 207 Multi-Status.

# Failures

Routing never returns an error.
Not found (404), unauthorized (401) and internal errors (500) are all
represented as a [*Response] status and a body rendered by the node that detected them.
A handler that returns an error or panics while rendering
only fails its own response; the remaining values of a fan-out are still routed.

Siblings can reach each other without re-traversing the tree through [*Node.Sibling].
*/
package dispatch
