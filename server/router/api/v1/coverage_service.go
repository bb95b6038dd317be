package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/posawiki/posawiki/server/internal/observability"
)

// GetCoverage recomputes the coverage report over the live corpus.
// Always a fresh computation; there is no cached report to go stale.
func (s *APIV1Service) GetCoverage(c echo.Context) error {
	ctx := c.Request().Context()

	report, err := s.TagAuthority.Analyze(ctx)
	if err != nil {
		return mapServiceError(err)
	}

	if reqCtx, ok := observability.FromContext(ctx); ok {
		reqCtx.Info("coverage report generated",
			slog.Int64(observability.LogFieldIndexVersion, report.IndexVersion),
			slog.Int("instances", report.TotalInstances),
			slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
	}
	return c.JSON(http.StatusOK, report)
}

// Revalidate re-splits every video's tags against the current index
// and persists the result.
func (s *APIV1Service) Revalidate(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := s.TagAuthority.Revalidate(ctx)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, result)
}
