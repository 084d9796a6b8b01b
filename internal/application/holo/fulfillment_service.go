package holo

import (
	"context"
	"strings"
	"time"

	"github.com/coregenion/holo-gateway/internal/domain/ordering"
	"github.com/coregenion/holo-gateway/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Validation errors returned before any state is touched. The messages are
// part of the partner contract.
var (
	ErrTrackingNumberRequired = shared.NewDomainError("INVALID_INPUT", "Tracking number is required")
	ErrLabelURLRequired       = shared.NewDomainError("INVALID_INPUT", "No Label URL")

	// ErrLabelFetchFailed is returned instead of committing with an empty
	// artifact when the service is configured to abort on fetch failures.
	ErrLabelFetchFailed = shared.NewDomainError("LABEL_UNAVAILABLE", "Shipping label could not be fetched")
)

// labelCarrier namespaces stored label artifacts. DHL is the only carrier
// the partner ships with.
const labelCarrier = "dhl"

// FulfillmentRequest carries the partner's shipment confirmation.
type FulfillmentRequest struct {
	TrackingNumber   string
	ShippingLabelURL string
}

// FulfillmentService performs the one mutation of the integration: marking
// an order fulfilled and attaching the carrier label.
type FulfillmentService struct {
	orders              ordering.OrderRepository
	projector           *OrderService
	labels              LabelFetcher
	artifacts           ArtifactStore
	locks               OrderLocker
	abortOnLabelFailure bool
	now                 func() time.Time
	logger              *zap.Logger
}

// FulfillmentServiceOption configures a FulfillmentService
type FulfillmentServiceOption func(*FulfillmentService)

// WithAbortOnLabelFailure makes a failed label download abort the transition
// instead of committing an empty artifact.
func WithAbortOnLabelFailure(abort bool) FulfillmentServiceOption {
	return func(s *FulfillmentService) {
		s.abortOnLabelFailure = abort
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) FulfillmentServiceOption {
	return func(s *FulfillmentService) {
		s.now = now
	}
}

// NewFulfillmentService creates a new FulfillmentService
func NewFulfillmentService(
	orders ordering.OrderRepository,
	projector *OrderService,
	labels LabelFetcher,
	artifacts ArtifactStore,
	locks OrderLocker,
	logger *zap.Logger,
	opts ...FulfillmentServiceOption,
) *FulfillmentService {
	s := &FulfillmentService{
		orders:    orders,
		projector: projector,
		labels:    labels,
		artifacts: artifacts,
		locks:     locks,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fulfill marks the order fulfilled and attaches the carrier label:
// it validates the request, serializes per order, downloads the label,
// stores it as <orderID>.pdf under the shop/carrier path, upserts the
// shipping sub-record and commits order + sub-record together. The returned
// document reflects the committed state.
//
// A failed label download is tolerated by default: the transition proceeds
// with an empty artifact and the failure is logged. Configure
// WithAbortOnLabelFailure to refuse instead.
func (s *FulfillmentService) Fulfill(ctx context.Context, orderID uuid.UUID, req FulfillmentRequest) (OrderDocument, error) {
	if strings.TrimSpace(req.TrackingNumber) == "" {
		return OrderDocument{}, ErrTrackingNumberRequired
	}
	if strings.TrimSpace(req.ShippingLabelURL) == "" {
		return OrderDocument{}, ErrLabelURLRequired
	}

	release, err := s.locks.Acquire(ctx, orderID.String())
	if err != nil {
		return OrderDocument{}, err
	}
	defer release()

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return OrderDocument{}, err
	}

	content, err := s.labels.Fetch(ctx, req.ShippingLabelURL)
	if err != nil {
		if s.abortOnLabelFailure {
			s.logger.Error("Label fetch failed, aborting fulfillment",
				zap.String("order_id", orderID.String()),
				zap.String("label_url", req.ShippingLabelURL),
				zap.Error(err),
			)
			return OrderDocument{}, ErrLabelFetchFailed
		}
		s.logger.Warn("Label fetch failed, storing empty artifact",
			zap.String("order_id", orderID.String()),
			zap.String("label_url", req.ShippingLabelURL),
			zap.Error(err),
		)
		content = nil
	}

	fileName := orderID.String() + ".pdf"
	key := labelArtifactKey(order.Shop, fileName)
	if err := s.artifacts.Put(ctx, key, content, "application/pdf"); err != nil {
		return OrderDocument{}, err
	}

	now := s.now()
	order.Fulfill(now)
	order.GetOrCreateShipment().Confirm(fileName, req.TrackingNumber, now)

	if err := s.orders.SaveWithShipment(ctx, order); err != nil {
		return OrderDocument{}, err
	}

	s.logger.Info("Order fulfilled",
		zap.String("order_id", orderID.String()),
		zap.String("tracking_number", req.TrackingNumber),
		zap.String("artifact_key", key),
	)

	return s.projector.ProjectOrder(ctx, order)
}

// labelArtifactKey builds the storage path for a label artifact, namespaced
// by shop identifier (lower-cased) and carrier.
func labelArtifactKey(shop, fileName string) string {
	return "shippinglabel/" + strings.ToLower(shop) + "/" + labelCarrier + "/" + fileName
}
