package service

import "time"

func (s *RateService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *HistoryService) SetClock(now func() time.Time) {
	s.now = now
}
