package vessels

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
)

// MarineTraffic queries the MarineTraffic vessel master data and ship search
// services. Payload fields arrive as strings or numbers depending on the
// service version, so they are read through jason.
type MarineTraffic struct {
	client
	apiKey string
}

// NewMarineTraffic creates a MarineTraffic registry client.
func NewMarineTraffic(cfg *RegistryConfig, logger *slog.Logger) *MarineTraffic {
	return &MarineTraffic{
		client: newClient("marinetraffic", cfg, logger),
		apiKey: cfg.APIKey,
	}
}

func (m *MarineTraffic) Name() string { return m.name }

// Search matches on the free-text query as a ship name. Type and visual hints
// are not searchable on this service, so an empty query returns no vessel.
func (m *MarineTraffic) Search(ctx context.Context, hints Hints) (*Vessel, error) {
	if hints.Query == "" {
		return nil, nil
	}
	return m.fetch(ctx, fmt.Sprintf(
		"%s/shipsearch/v:2/%s/shipname:%s/protocol:jsono",
		m.baseURL, url.PathEscape(m.apiKey), url.PathEscape(hints.Query),
	))
}

func (m *MarineTraffic) LookupMMSI(ctx context.Context, mmsi string) (*Vessel, error) {
	return m.masterData(ctx, "mmsi", mmsi)
}

func (m *MarineTraffic) LookupIMO(ctx context.Context, imo string) (*Vessel, error) {
	return m.masterData(ctx, "imo", imo)
}

func (m *MarineTraffic) masterData(ctx context.Context, field, id string) (*Vessel, error) {
	return m.fetch(ctx, fmt.Sprintf(
		"%s/vesselmasterdata/v:5/%s/%s:%s/protocol:json",
		m.baseURL, url.PathEscape(m.apiKey), field, url.PathEscape(id),
	))
}

func (m *MarineTraffic) fetch(ctx context.Context, u string) (*Vessel, error) {
	body, err := m.get(ctx, u)
	if err != nil || body == nil {
		return nil, err
	}
	return parseMarineTraffic(body)
}

// parseMarineTraffic reads the first record of a MarineTraffic array payload.
func parseMarineTraffic(body []byte) (*Vessel, error) {
	r, err := firstRecord("marinetraffic", body)
	if err != nil || r == nil {
		return nil, err
	}

	v := &Vessel{
		Name:     scalar(r, "SHIPNAME"),
		MMSI:     scalar(r, "MMSI"),
		IMO:      scalar(r, "IMO"),
		Type:     titleCase(scalar(r, "SHIPTYPE")),
		Length:   withUnit(scalar(r, "LENGTH"), "m"),
		Tonnage:  withUnit(scalar(r, "DWT"), " GT"),
		Owner:    scalar(r, "OWNER"),
		Location: scalar(r, "AIS_LAST_POS"),
		Flag:     scalar(r, "FLAG"),
	}
	if v.Name == "" && v.MMSI == "" && v.IMO == "" {
		return nil, nil
	}
	return v, nil
}
