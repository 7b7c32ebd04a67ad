package service

import "time"

// SetClock replaces the time source and ID generator so tests get
// deterministic bookings.
func (s *BookingService) SetClock(now func() time.Time, newID func() (string, error)) {
	s.now = now
	s.newID = newID
}
