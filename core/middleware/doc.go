// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the
// handler.
//
// # Components
//
//   - RayID: Generates a unique Request ID (RayID) for every incoming
//     request, injecting it into the context and response headers for
//     tracing.
//
// Upload authentication is not middleware: the API key is part of the
// upload route and is verified by the upload feature against the trusted
// source registry, so query endpoints stay public.
package middleware
