// Package capture negotiates capture sizes for devices.
//
// Negotiation mirrors what a camera open does: the preview size is the best
// fit for the requested target among the device's preview sizes, then the
// picture size is chosen to match that preview where possible.
package capture

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/smazurov/framefit/internal/devices"
	"github.com/smazurov/framefit/internal/events"
	"github.com/smazurov/framefit/internal/logging"
	"github.com/smazurov/framefit/internal/metrics"
	"github.com/smazurov/framefit/internal/resolution"
)

// DefaultTarget is used when a caller passes a zero target: a portrait
// 1080p frame.
var DefaultTarget = resolution.Target{Width: 1080, Height: 1920}

// Negotiation is the outcome of configuring one device.
type Negotiation struct {
	DeviceID string
	Target   resolution.Target
	Preview  resolution.Selection
	Picture  resolution.Selection
}

// Negotiator picks preview and picture sizes using a device source.
// It holds no per-call state and is safe for concurrent use.
type Negotiator struct {
	source        devices.Source
	bus           *events.Bus
	defaultTarget resolution.Target
	logger        *slog.Logger
}

// Option configures a Negotiator.
type Option func(*Negotiator)

// WithDefaultTarget replaces DefaultTarget for zero-target calls.
func WithDefaultTarget(target resolution.Target) Option {
	return func(n *Negotiator) {
		if target.Valid() {
			n.defaultTarget = target
		}
	}
}

// NewNegotiator creates a negotiator. bus may be nil.
func NewNegotiator(source devices.Source, bus *events.Bus, opts ...Option) *Negotiator {
	n := &Negotiator{
		source:        source,
		bus:           bus,
		defaultTarget: DefaultTarget,
		logger:        logging.GetLogger("capture"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// DefaultTarget returns the target used for zero-target calls.
func (n *Negotiator) DefaultTarget() resolution.Target {
	return n.defaultTarget
}

// Negotiate picks the preview and picture sizes of deviceID for target.
// A zero target means the negotiator's default target. Devices without
// picture sizes capture pictures at the preview size. A picture size equal
// to the chosen preview always wins over the best fit for target, so preview
// and picture frames share one field of view.
func (n *Negotiator) Negotiate(deviceID string, target resolution.Target) (*Negotiation, error) {
	if target == (resolution.Target{}) {
		target = n.defaultTarget
	}

	result, err := n.negotiate(deviceID, target)
	if err != nil {
		n.logger.Warn("Negotiation failed", "device_id", deviceID, "target", target, "error", err)
		n.publish(events.NegotiationFailedEvent{
			DeviceID:  deviceID,
			Target:    target.String(),
			Error:     err.Error(),
			Timestamp: now(),
		})
		return nil, err
	}

	n.logger.Info("Negotiated capture sizes",
		"device_id", deviceID,
		"target", target,
		"preview", result.Preview.Resolution,
		"preview_tier", result.Preview.Tier,
		"picture", result.Picture.Resolution,
		"picture_tier", result.Picture.Tier)
	n.publish(events.NegotiatedEvent{
		DeviceID:    deviceID,
		Target:      target.String(),
		Preview:     result.Preview.Resolution.String(),
		PreviewTier: string(result.Preview.Tier),
		Picture:     result.Picture.Resolution.String(),
		PictureTier: string(result.Picture.Tier),
		Timestamp:   now(),
	})
	return result, nil
}

func (n *Negotiator) negotiate(deviceID string, target resolution.Target) (*Negotiation, error) {
	previewSizes, err := n.source.PreviewSizes(deviceID)
	if err != nil {
		return nil, err
	}
	preview, err := resolution.Select(previewSizes, target)
	if err != nil {
		metrics.RecordSelectionError(metrics.KindPreview)
		return nil, fmt.Errorf("preview of %s: %w", deviceID, err)
	}
	metrics.RecordSelection(metrics.KindPreview, string(preview.Tier))

	pictureSizes, err := n.source.PictureSizes(deviceID)
	if err != nil {
		return nil, err
	}

	picture := resolution.Selection{Resolution: preview.Resolution, Tier: resolution.TierPreview}
	if len(pictureSizes) > 0 {
		picture, err = resolution.SelectPicture(pictureSizes, preview.Resolution, target)
		if err != nil {
			metrics.RecordSelectionError(metrics.KindPicture)
			return nil, fmt.Errorf("picture of %s: %w", deviceID, err)
		}
	}
	metrics.RecordSelection(metrics.KindPicture, string(picture.Tier))

	return &Negotiation{
		DeviceID: deviceID,
		Target:   target,
		Preview:  preview,
		Picture:  picture,
	}, nil
}

// Select runs a single selection outside any device, counting it in the
// metrics and publishing a SelectionEvent on success.
func (n *Negotiator) Select(candidates []resolution.Resolution, target resolution.Target) (resolution.Selection, error) {
	sel, err := resolution.Select(candidates, target)
	if err != nil {
		metrics.RecordSelectionError(metrics.KindSelect)
		return resolution.Selection{}, err
	}
	metrics.RecordSelection(metrics.KindSelect, string(sel.Tier))

	n.logger.Debug("Selected resolution", "target", target, "resolution", sel.Resolution, "tier", sel.Tier)
	n.publish(events.SelectionEvent{
		Candidates: resolution.Strings(candidates),
		Target:     target.String(),
		Resolution: sel.Resolution.String(),
		Tier:       string(sel.Tier),
		Timestamp:  now(),
	})
	return sel, nil
}

// Devices lists the devices of the underlying source.
func (n *Negotiator) Devices() ([]devices.DeviceInfo, error) {
	return n.source.FindDevices()
}

// Sizes returns the preview and picture sizes of deviceID.
func (n *Negotiator) Sizes(deviceID string) (preview, picture []resolution.Resolution, err error) {
	preview, err = n.source.PreviewSizes(deviceID)
	if err != nil {
		return nil, nil, err
	}
	picture, err = n.source.PictureSizes(deviceID)
	if err != nil {
		return nil, nil, err
	}
	return preview, picture, nil
}

func (n *Negotiator) publish(ev events.Event) {
	if n.bus != nil {
		n.bus.Publish(ev)
	}
}

func now() string {
	return time.Now().Format(time.RFC3339)
}
