package app

import "context"

type AttendanceUseCase interface {
	Report(ctx context.Context, req AttendanceRequest) (*AttendanceResponse, error)
}

type CallReportUseCase interface {
	CallReport(ctx context.Context, req CallReportRequest) (*CallReportResponse, error)
}
