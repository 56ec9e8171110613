package application

import (
	"context"
	"sort"
	"time"

	reservationDomain "github.com/baxirbajja/CMCEspace-api/internal/domain/reservation"
	spaceDomain "github.com/baxirbajja/CMCEspace-api/internal/domain/space"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// monthNames holds the French month labels used by the statistics
// endpoint, indexed by month number minus one.
var monthNames = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// MonthBucketDTO is one month's reservation counts.
type MonthBucketDTO struct {
	Month    string `json:"month"`
	Total    int64  `json:"total"`
	Approved int64  `json:"approved"`
	Pending  int64  `json:"pending"`
	Declined int64  `json:"declined"`
}

// MonthlyStatsDTO is the yearly statistics response, always carrying
// twelve buckets in calendar order.
type MonthlyStatsDTO struct {
	Year  int              `json:"year"`
	Stats []MonthBucketDTO `json:"stats"`
}

// ReportDayDTO groups the reservations of a single day.
type ReportDayDTO struct {
	Date         string           `json:"date"`
	Reservations []ReservationDTO `json:"reservations"`
	Count        int              `json:"count"`
}

// SpaceUsageDTO is one space's reservation totals.
type SpaceUsageDTO struct {
	SpaceID           uuid.UUID `json:"spaceId"`
	Title             string    `json:"title"`
	TotalReservations int64     `json:"totalReservations"`
	Approved          int64     `json:"approved"`
	Pending           int64     `json:"pending"`
	Declined          int64     `json:"declined"`
}

// ReportFilter narrows the detailed report. Zero values mean no filter;
// an unknown status is ignored rather than rejected.
type ReportFilter struct {
	StartDate string
	EndDate   string
	Status    string
}

// ReportService computes the aggregation endpoints backing the admin
// dashboard.
type ReportService struct {
	reservations reservationDomain.Repository
	spaces       spaceDomain.Repository
	logger       *zap.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(
	reservations reservationDomain.Repository,
	spaces spaceDomain.Repository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		reservations: reservations,
		spaces:       spaces,
		logger:       logger,
	}
}

// MonthlyStats returns per-month reservation counts for one year. Every
// month is present, zero-filled when empty.
func (s *ReportService) MonthlyStats(ctx context.Context, year int) (*MonthlyStatsDTO, error) {
	counts, err := s.reservations.MonthlyStatusCounts(ctx, year)
	if err != nil {
		return nil, err
	}

	stats := make([]MonthBucketDTO, 12)
	for i := range stats {
		stats[i].Month = monthNames[i]
	}
	for _, row := range counts {
		if row.Month < 1 || row.Month > 12 {
			continue
		}
		bucket := &stats[row.Month-1]
		bucket.Total += row.Count
		switch row.Status {
		case reservationDomain.StatusApproved:
			bucket.Approved += row.Count
		case reservationDomain.StatusPending:
			bucket.Pending += row.Count
		case reservationDomain.StatusDeclined:
			bucket.Declined += row.Count
		}
	}

	return &MonthlyStatsDTO{Year: year, Stats: stats}, nil
}

// DetailedReport returns reservations grouped by day, most recent day
// first. All filters are optional.
func (s *ReportService) DetailedReport(ctx context.Context, filter ReportFilter) ([]ReportDayDTO, error) {
	from := time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

	if filter.StartDate != "" {
		parsed, err := time.Parse(dateLayout, filter.StartDate)
		if err == nil {
			from = parsed
		}
	}
	if filter.EndDate != "" {
		parsed, err := time.Parse(dateLayout, filter.EndDate)
		if err == nil {
			to = parsed
		}
	}

	// A status outside the known set is dropped, not rejected.
	var status reservationDomain.Status
	if candidate := reservationDomain.Status(filter.Status); candidate.IsValid() {
		status = candidate
	}

	reservations, err := s.reservations.FindByDateRange(ctx, from, to, status)
	if err != nil {
		return nil, err
	}

	dtos, err := resolveReservationDTOs(ctx, s.spaces, reservations)
	if err != nil {
		return nil, err
	}

	// Rows arrive date-descending, so first-seen grouping keeps that order.
	var days []ReportDayDTO
	index := make(map[string]int)
	for _, dto := range dtos {
		pos, ok := index[dto.Date]
		if !ok {
			pos = len(days)
			index[dto.Date] = pos
			days = append(days, ReportDayDTO{Date: dto.Date})
		}
		days[pos].Reservations = append(days[pos].Reservations, dto)
		days[pos].Count++
	}
	return days, nil
}

// SpaceUsage returns per-space reservation totals, busiest space first.
// Spaces without reservations do not appear.
func (s *ReportService) SpaceUsage(ctx context.Context) ([]SpaceUsageDTO, error) {
	rows, err := s.reservations.UsageBySpace(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[uuid.UUID]int)
	var usage []SpaceUsageDTO
	for _, row := range rows {
		pos, ok := index[row.SpaceID]
		if !ok {
			pos = len(usage)
			index[row.SpaceID] = pos
			usage = append(usage, SpaceUsageDTO{SpaceID: row.SpaceID, Title: row.SpaceTitle})
		}
		entry := &usage[pos]
		entry.TotalReservations += row.Count
		switch row.Status {
		case reservationDomain.StatusApproved:
			entry.Approved += row.Count
		case reservationDomain.StatusPending:
			entry.Pending += row.Count
		case reservationDomain.StatusDeclined:
			entry.Declined += row.Count
		}
	}

	sort.SliceStable(usage, func(i, j int) bool {
		return usage[i].TotalReservations > usage[j].TotalReservations
	})
	return usage, nil
}
