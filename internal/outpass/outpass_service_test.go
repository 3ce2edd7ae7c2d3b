package outpass_test

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hostel-client/internal/outpass"
	outpasserrors "hostel-client/internal/outpass/errors"
	"hostel-client/internal/shared/apperror"
)

type fakeResource struct {
	listFn   func(ctx context.Context, resource string, filter url.Values, out any) error
	createFn func(ctx context.Context, resource string, payload, out any) error
	updateFn func(ctx context.Context, resource, id string, patch, out any) error
	removeFn func(ctx context.Context, resource, id string) error
	postFn   func(ctx context.Context, path string, payload, out any) error
}

func (f *fakeResource) List(ctx context.Context, resource string, filter url.Values, out any) error {
	if f.listFn != nil {
		return f.listFn(ctx, resource, filter, out)
	}
	return nil
}

func (f *fakeResource) Create(ctx context.Context, resource string, payload, out any) error {
	if f.createFn != nil {
		return f.createFn(ctx, resource, payload, out)
	}
	return nil
}

func (f *fakeResource) Update(ctx context.Context, resource, id string, patch, out any) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, resource, id, patch, out)
	}
	return nil
}

func (f *fakeResource) Remove(ctx context.Context, resource, id string) error {
	if f.removeFn != nil {
		return f.removeFn(ctx, resource, id)
	}
	return nil
}

func (f *fakeResource) Post(ctx context.Context, path string, payload, out any) error {
	if f.postFn != nil {
		return f.postFn(ctx, path, payload, out)
	}
	return nil
}

func validSubmit() outpass.SubmitRequest {
	return outpass.SubmitRequest{
		RollNo:           "CS101",
		StudentName:      "Arun Kumar",
		RoomNo:           "A-101",
		Destination:      "City Hospital",
		Purpose:          "Dental appointment",
		DepartureDate:    "2026-09-01",
		DepartureClock:   "09:00",
		ReturnDate:       "2026-09-01",
		ReturnClock:      "18:00",
		EmergencyContact: "9876543210",
	}
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("success combines date and clock into wire timestamps", func(t *testing.T) {
		client := &fakeResource{
			createFn: func(ctx context.Context, resource string, payload, out any) error {
				assert.Equal(t, "outpasses", resource)

				raw, err := json.Marshal(payload)
				assert.NoError(t, err)
				var wire map[string]string
				assert.NoError(t, json.Unmarshal(raw, &wire))
				assert.Equal(t, "2026-09-01T09:00", wire["departureTime"])
				assert.Equal(t, "2026-09-01T18:00", wire["returnTime"])

				*out.(*outpass.Outpass) = outpass.Outpass{ID: "o1", Status: outpass.StatusPending}
				return nil
			},
		}
		svc := outpass.NewService(client)

		created, err := svc.Submit(ctx, validSubmit())

		assert.NoError(t, err)
		assert.Equal(t, "o1", created.ID)
	})

	t.Run("negative missing emergency contact fails before any request", func(t *testing.T) {
		called := false
		client := &fakeResource{
			createFn: func(ctx context.Context, resource string, payload, out any) error {
				called = true
				return nil
			},
		}
		svc := outpass.NewService(client)

		req := validSubmit()
		req.EmergencyContact = ""
		_, err := svc.Submit(ctx, req)

		assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
		assert.False(t, called)
	})

	t.Run("negative return before departure", func(t *testing.T) {
		svc := outpass.NewService(&fakeResource{})

		req := validSubmit()
		req.ReturnClock = "08:00"
		_, err := svc.Submit(ctx, req)

		assert.ErrorIs(t, err, outpasserrors.ErrReturnBeforeDeparture)
	})

	t.Run("negative return equal to departure", func(t *testing.T) {
		svc := outpass.NewService(&fakeResource{})

		req := validSubmit()
		req.ReturnClock = req.DepartureClock
		_, err := svc.Submit(ctx, req)

		assert.ErrorIs(t, err, outpasserrors.ErrReturnBeforeDeparture)
	})
}

func TestService_ListByRoll(t *testing.T) {
	ctx := context.Background()

	t.Run("success newest first", func(t *testing.T) {
		client := &fakeResource{
			listFn: func(ctx context.Context, resource string, filter url.Values, out any) error {
				assert.Equal(t, "CS101", filter.Get("rollno"))
				*out.(*[]outpass.Outpass) = []outpass.Outpass{
					{ID: "old", CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
					{ID: "new", CreatedAt: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)},
				}
				return nil
			},
		}
		svc := outpass.NewService(client)

		outpasses, err := svc.ListByRoll(ctx, "CS101")

		assert.NoError(t, err)
		assert.Equal(t, "new", outpasses[0].ID)
	})

	t.Run("negative missing roll number", func(t *testing.T) {
		svc := outpass.NewService(&fakeResource{})

		_, err := svc.ListByRoll(ctx, "")

		assert.ErrorIs(t, err, outpasserrors.ErrMissingRollNo)
	})
}

func TestService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success approval carries the issued QR code", func(t *testing.T) {
		client := &fakeResource{
			updateFn: func(ctx context.Context, resource, id string, patch, out any) error {
				assert.Equal(t, "outpasses", resource)
				assert.Equal(t, map[string]string{"status": "Approved"}, patch)
				*out.(*outpass.Outpass) = outpass.Outpass{
					ID:     id,
					Status: outpass.StatusApproved,
					QRCode: "data:image/png;base64,T1VUUEFTUzpvMQ==",
				}
				return nil
			},
		}
		svc := outpass.NewService(client)

		updated, err := svc.SetStatus(ctx, "o1", outpass.StatusPending, outpass.StatusApproved)

		assert.NoError(t, err)
		payload, ok := updated.QRPayload()
		assert.True(t, ok)
		assert.Contains(t, payload, "data:image/png;base64,")
	})

	t.Run("success rejection has no QR payload", func(t *testing.T) {
		client := &fakeResource{
			updateFn: func(ctx context.Context, resource, id string, patch, out any) error {
				*out.(*outpass.Outpass) = outpass.Outpass{ID: id, Status: outpass.StatusRejected}
				return nil
			},
		}
		svc := outpass.NewService(client)

		updated, err := svc.SetStatus(ctx, "o1", outpass.StatusPending, outpass.StatusRejected)

		assert.NoError(t, err)
		_, ok := updated.QRPayload()
		assert.False(t, ok)
		assert.True(t, updated.Terminal())
	})

	t.Run("negative already terminal", func(t *testing.T) {
		svc := outpass.NewService(&fakeResource{})

		_, err := svc.SetStatus(ctx, "o1", outpass.StatusApproved, outpass.StatusRejected)

		assert.ErrorIs(t, err, outpasserrors.ErrNotPending)
	})

	t.Run("negative lowercase status is not accepted", func(t *testing.T) {
		svc := outpass.NewService(&fakeResource{})

		_, err := svc.SetStatus(ctx, "o1", outpass.StatusPending, "approved")

		assert.ErrorIs(t, err, outpasserrors.ErrInvalidStatus)
	})
}

func TestOutpass_QRPayload(t *testing.T) {
	t.Run("negative leaked code on a pending record stays hidden", func(t *testing.T) {
		o := outpass.Outpass{Status: outpass.StatusPending, QRCode: "data:image/png;base64,xxxx"}

		_, ok := o.QRPayload()

		assert.False(t, ok)
	})

	t.Run("negative approved without code", func(t *testing.T) {
		o := outpass.Outpass{Status: outpass.StatusApproved}

		_, ok := o.QRPayload()

		assert.False(t, ok)
	})
}
