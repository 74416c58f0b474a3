/*
Package auth decides who may view and edit the information a page renders.

Each authorizer in this package implements dispatch.Authorizer,
so is set on the root of a page with page.WithAuthorizer.

Session

SessionAuthorizer lets users registered in the session of a request view a page.

JWT

JWTAuthorizer lets requests carrying an HS256 token in their "jwt" field view a page,
and edit it when the token's claims grant so.
*/
package auth
