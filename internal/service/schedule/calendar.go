package schedule

import (
	"context"
	"fmt"

	ics "github.com/arran4/golang-ical"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
)

// Calendar implements schedule.ScheduleService. It renders the filtered
// assignments as an iCalendar feed.
func (s *ScheduleServiceImpl) Calendar(ctx context.Context, req schedule.GetScheduleRequest) ([]byte, error) {
	assignments, err := s.list(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//worktime-backend-go//schedule//EN")
	cal.SetXWRCalName("Schedule " + req.EmployeeID)

	for _, a := range assignments {
		span, err := a.Span()
		if err != nil {
			return nil, err
		}
		event := cal.AddEvent(a.ID + "@worktime")
		event.SetDtStampTime(now)
		event.SetStartAt(span.Start)
		event.SetEndAt(span.End)
		event.SetSummary(fmt.Sprintf("%s (%s)", a.ShiftName, a.ShiftCode))
		event.SetLocation(a.Department)
		event.SetDescription(a.Position)
	}

	return []byte(cal.Serialize()), nil
}
