// Package preflight runs startup health checks: state directory
// access, browser bridge reachability, and provider credential
// presence for every configured route.
package preflight
