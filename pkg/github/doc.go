// Package github lists the repositories owned by a GitHub account for ghmirror.
// It provides two interchangeable listing backends behind the Lister interface:
// one that shells out to the gh CLI and relies on its ambient credentials, and
// one that talks to the GitHub REST API with a token.
//
// The package includes:
// - Lister interface with CLI and REST implementations
// - Repository and Account types shared with the mirror reconciler
// - APIError modelling the GitHub error payload
// - AuthManager for token resolution and validation
package github
