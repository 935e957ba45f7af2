/*
Package estimate runs fee estimates for a session and hands the results to
the surrounding collaborators.

The fee engine is the only component whose failure reaches the caller. The
report cache, the calculation archive and the analytics sink are optional;
when one of them fails the error is logged and counted, and the estimate is
returned unchanged.

Usage:

	svc := estimate.NewService(engine, repo, sink, cache, estimate.Config{}, &estimate.NoopMetricsCollector{})

	result, err := svc.Calculate(ctx, sessionID, inputs)

	history, err := svc.History(ctx, sessionID, 20)
*/
package estimate
