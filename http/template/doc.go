/*
Package template parses html/template files out of layered filesystems.

A Parser reads from an ordered list of fs.FS, the first holding a file shadowing the rest,
so an app can override any template a library embeds under the same name.
Functions available to templates are registered with ParserOptFn or AddFn;
the helpers in this package (Env, Nonce, Resources, RootURL)
return their own names for convenient registering.

Package templatetest provides an in-memory fs.FS for tests.
*/
package template
