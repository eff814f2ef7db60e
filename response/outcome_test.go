package response

import (
	"errors"
	"net/http"
	"testing"
)

func TestSuccess_IsNotFailure(t *testing.T) {
	var o Outcome[string] = Success[string]{Body: "ok", Code: 200}

	if !IsSuccess[string](o) {
		t.Error("expected IsSuccess to be true")
	}
	if IsFailure[string](o) {
		t.Error("expected IsFailure to be false for Success")
	}
	if _, ok := AsFailure[string](o); ok {
		t.Error("expected AsFailure to report false for Success")
	}
}

func TestErrorVariants_ImplementFailure(t *testing.T) {
	cause := errors.New("boom")

	outcomes := map[string]Outcome[string]{
		"server":  ServerError[string]{Code: 503},
		"network": NetworkError[string]{Cause: cause},
		"unknown": UnknownError[string]{Cause: cause, Code: 200},
	}

	for name, o := range outcomes {
		if !IsFailure[string](o) {
			t.Errorf("%s: expected IsFailure to be true", name)
		}
		f, ok := AsFailure[string](o)
		if !ok {
			t.Errorf("%s: expected AsFailure to report true", name)
			continue
		}
		if f.Err() == nil {
			t.Errorf("%s: expected a non-nil error from Failure.Err", name)
		}
	}
}

func TestNetworkError_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	o := NetworkError[int]{Cause: cause}

	if !errors.Is(o.Err(), cause) {
		t.Errorf("expected Err to unwrap to the original cause, got %v", o.Err())
	}
}

func TestUnknownError_PreservesContext(t *testing.T) {
	cause := errors.New("decode failure")
	o := UnknownError[int]{
		Cause:   cause,
		Code:    200,
		Headers: http.Header{"Content-Type": {"application/json"}},
	}

	if o.Code != 200 {
		t.Errorf("expected status code to be preserved, got %d", o.Code)
	}
	if !errors.Is(o.Err(), cause) {
		t.Errorf("expected Err to unwrap to the original cause, got %v", o.Err())
	}
}

func TestOutcome_SwitchCoversVariants(t *testing.T) {
	outcomes := []Outcome[string]{
		Success[string]{Body: "ok", Code: 200},
		ServerError[string]{Code: 500},
		NetworkError[string]{Cause: errors.New("down")},
		UnknownError[string]{Cause: errors.New("odd")},
	}

	for _, o := range outcomes {
		switch o.(type) {
		case Success[string], ServerError[string], NetworkError[string], UnknownError[string]:
		default:
			t.Errorf("unexpected outcome variant %T", o)
		}
	}
}
