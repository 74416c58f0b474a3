/*
Package req decodes the fields and bodies of requests into application structs.

It supports JSON-encoded payloads and payloads encoded as form fields or query parameters.
In both cases, package req expects to parse payloads into a pointer to a struct.
That struct ought to leverage the appropriate struct tags for performing two tasks.
First, matching keys in the payload to fields on the struct.
Second, for validating the payload's data meets requirements.

The parade of errors that may propagate from such a task
are translated to webbot sentinel errors in order to provide a consistent interface
for issues that arise across encoding types.
*/
package req
