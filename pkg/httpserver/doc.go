// Package httpserver runs an http.Handler with graceful shutdown and
// provides liveness and readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	mux.Get("/health/live", httpserver.LivenessHandler())
//	mux.Get("/health/ready", httpserver.ReadinessHandler(log, 2*time.Second, map[string]httpserver.CheckFunc{
//		"redis": redis.Healthcheck(client),
//	}))
//	if err := srv.Run(ctx, mux); err != nil {
//		return err
//	}
//
// Run returns when ctx is canceled, on SIGINT/SIGTERM or after Shutdown.
package httpserver
