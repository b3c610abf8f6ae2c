package devices

import (
	"errors"
	"net/url"
	"strconv"

	"device-inventory/core/logger"
	"device-inventory/core/reconcile"
	"device-inventory/core/router"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for devices.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the device routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/devices")
	group.Get("/", h.HandleListDevices)
	group.Get("/:mac", h.HandleGetDevice)
}

// HandleListDevices runs a reconciliation pass and returns the report.
// @Summary List Devices
// @Description Reconcile DHCP leases, ARP entries and bridge hosts into one record per device.
// @Tags devices
// @Produce json
// @Param conflicts query bool false "Only return devices with DHCP/ARP conflicts"
// @Success 200 {object} reconcile.Report "Inventory report"
// @Failure 404 {object} map[string]string "No DHCP leases found"
// @Failure 500 {object} map[string]string "Configuration error"
// @Failure 502 {object} map[string]string "Router unreachable or query failed"
// @Security ApiKeyAuth
// @Router /devices [get]
func (h *Handler) HandleListDevices(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	conflictsOnly := false
	if raw := c.Query("conflicts"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "conflicts must be a boolean",
			})
		}
		conflictsOnly = v
	}

	report, err := h.service.Report(c.UserContext())
	if err != nil {
		l.Error("Device reconciliation failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if conflictsOnly {
		report = report.WithConflictsOnly()
	}
	return c.JSON(report)
}

// HandleGetDevice returns the merged view of a single device.
// @Summary Get Device
// @Description Get the merged view of one device by hardware address (case-insensitive).
// @Tags devices
// @Produce json
// @Param mac path string true "Hardware address (e.g. 'AA:BB:CC:00:11:22')"
// @Success 200 {object} reconcile.MergedView "Device"
// @Failure 400 {object} map[string]string "Invalid hardware address"
// @Failure 404 {object} map[string]string "Device not found"
// @Failure 502 {object} map[string]string "Router unreachable or query failed"
// @Security ApiKeyAuth
// @Router /devices/{mac} [get]
func (h *Handler) HandleGetDevice(c *fiber.Ctx) error {
	mac, err := url.PathUnescape(c.Params("mac"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid hardware address",
		})
	}
	l := logger.WithRayID(h.service.logger, c).With(zap.String("mac_address", mac))

	view, err := h.service.Device(c.UserContext(), mac)
	if err != nil {
		l.Error("Device lookup failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if view == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "device not found",
		})
	}

	return c.JSON(view)
}

// statusFor maps pass errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, reconcile.ErrNoLeasesFound):
		return fiber.StatusNotFound
	case errors.Is(err, router.ErrConnection), errors.Is(err, router.ErrQuery):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
