// Package server hosts errguard-wrapped handlers over HTTP.
//
// Gin routes use the imperative convention through handler.Wrapper.Gin;
// value handlers mount on the root mux with HandleValue. Both sit behind
// the same server-level middleware, and unknown routes answer with
// NotFoundError or MethodNotAllowedError envelopes.
//
//	srv := server.New(cfg.Server, w, log)
//	srv.ApplyMiddleware(ctx)
//	srv.GinEngine().POST("/users", w.Gin(createUser))
//	srv.HandleValue("GET /v/users/{id}", getUser)
//	err := srv.Start(ctx)
package server
