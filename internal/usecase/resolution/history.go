package resolution

import (
	"context"

	"modpanel/internal/ports"
)

// AppealComments lists an appeal's comments oldest first, including the
// audit records written by resolutions.
func (s *Service) AppealComments(ctx context.Context, appealID uint64) ([]ports.AppealComment, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.central.Appeals.ListAppealComments(ctx, appealID)
}

func (s *Service) ReportCommands(ctx context.Context, reportID uint64) ([]ports.ReportCommand, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.central.Reports.ListReportCommands(ctx, reportID)
}
