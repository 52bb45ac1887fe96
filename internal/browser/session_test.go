package browser

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/adyen/uitests/internal/config"
)

// newTestSession builds a session whose releases record their names
func newTestSession(order *[]string, failing map[string]error, names ...string) *Session {
	s := &Session{id: "test-session"}
	for _, name := range names {
		name := name
		s.onQuit(name, func() error {
			*order = append(*order, name)
			return failing[name]
		})
	}
	return s
}

func TestSession_Quit_ReverseOrder(t *testing.T) {
	// GIVEN
	var order []string
	s := newTestSession(&order, nil, "playwright driver", "browser", "browser context", "page")

	// WHEN
	err := s.Quit()

	// THEN
	if err != nil {
		t.Fatalf("Quit() error = %v", err)
	}
	expected := []string{"page", "browser context", "browser", "playwright driver"}
	if !reflect.DeepEqual(order, expected) {
		t.Errorf("expected release order %v, got %v", expected, order)
	}
}

func TestSession_Quit_ContinuesAfterFailure(t *testing.T) {
	// GIVEN
	var order []string
	closeErr := errors.New("target closed")
	s := newTestSession(&order, map[string]error{"browser context": closeErr},
		"playwright driver", "browser", "browser context", "page")

	// WHEN
	err := s.Quit()

	// THEN
	if !errors.Is(err, closeErr) {
		t.Errorf("expected error to wrap %v, got %v", closeErr, err)
	}
	if !strings.Contains(err.Error(), "browser context") {
		t.Errorf("expected error to name the failing step, got %v", err)
	}
	if len(order) != 4 {
		t.Errorf("expected every release to run, got %v", order)
	}
}

func TestSession_Quit_Idempotent(t *testing.T) {
	var order []string
	s := newTestSession(&order, nil, "playwright driver", "browser")

	for i := 0; i < 3; i++ {
		if err := s.Quit(); err != nil {
			t.Fatalf("Quit() error = %v", err)
		}
	}

	if len(order) != 2 {
		t.Errorf("expected releases to run once, got %v", order)
	}
}

func TestSession_Quit_Empty(t *testing.T) {
	s := &Session{}
	if err := s.Quit(); err != nil {
		t.Errorf("Quit() on empty session error = %v", err)
	}
}

// stepRecorder builds steps that log acquire and release calls
type stepRecorder struct {
	acquired []string
	released []string
}

func (r *stepRecorder) step(name string, acquireErr, releaseErr error) step {
	return step{
		name: name,
		acquire: func() (func() error, error) {
			r.acquired = append(r.acquired, name)
			if acquireErr != nil {
				return nil, acquireErr
			}
			return func() error {
				r.released = append(r.released, name)
				return releaseErr
			}, nil
		},
	}
}

func TestSession_Acquire_PartialFailureReleasesAcquired(t *testing.T) {
	names := []string{"playwright driver", "browser", "browser context", "page"}
	launchErr := errors.New("launch step failed")

	tests := []struct {
		name         string
		failAt       int
		wantReleased []string
	}{
		{"driver fails", 0, nil},
		{"browser fails", 1, []string{"playwright driver"}},
		{"context fails", 2, []string{"browser", "playwright driver"}},
		{"page fails", 3, []string{"browser context", "browser", "playwright driver"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			r := &stepRecorder{}
			var steps []step
			for i, name := range names {
				var err error
				if i == tt.failAt {
					err = launchErr
				}
				steps = append(steps, r.step(name, err, nil))
			}
			s := &Session{id: "test-session"}

			// WHEN
			err := s.acquire(steps)

			// THEN
			if !errors.Is(err, launchErr) {
				t.Fatalf("expected launch error, got %v", err)
			}
			if len(r.acquired) != tt.failAt+1 {
				t.Errorf("expected steps after the failure not to run, acquired %v", r.acquired)
			}
			if !reflect.DeepEqual(r.released, tt.wantReleased) {
				t.Errorf("expected released %v, got %v", tt.wantReleased, r.released)
			}
		})
	}
}

func TestSession_Acquire_JoinsReleaseErrors(t *testing.T) {
	// GIVEN
	r := &stepRecorder{}
	launchErr := errors.New("chromium exited")
	stopErr := errors.New("driver already stopped")
	s := &Session{id: "test-session"}

	// WHEN
	err := s.acquire([]step{
		r.step("playwright driver", nil, stopErr),
		r.step("browser", launchErr, nil),
	})

	// THEN
	if !errors.Is(err, launchErr) {
		t.Errorf("expected launch error in %v", err)
	}
	if !errors.Is(err, stopErr) {
		t.Errorf("expected release error joined in %v", err)
	}
	if !reflect.DeepEqual(r.released, []string{"playwright driver"}) {
		t.Errorf("unexpected releases %v", r.released)
	}
}

func TestSession_Acquire_SuccessDefersReleaseToQuit(t *testing.T) {
	r := &stepRecorder{}
	s := &Session{id: "test-session"}

	err := s.acquire([]step{
		r.step("playwright driver", nil, nil),
		r.step("browser", nil, nil),
	})
	if err != nil {
		t.Fatalf("acquire() error = %v", err)
	}
	if len(r.released) != 0 {
		t.Fatalf("nothing should be released before Quit, got %v", r.released)
	}

	if err := s.Quit(); err != nil {
		t.Fatalf("Quit() error = %v", err)
	}
	if !reflect.DeepEqual(r.released, []string{"browser", "playwright driver"}) {
		t.Errorf("unexpected releases %v", r.released)
	}
}

func TestSession_LaunchSteps_Order(t *testing.T) {
	s := &Session{}

	var names []string
	for _, st := range s.launchSteps(config.DefaultBrowserConfig(), nil) {
		names = append(names, st.name)
	}

	expected := []string{"playwright driver", "browser", "browser context", "page"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("expected launch steps %v, got %v", expected, names)
	}
}
