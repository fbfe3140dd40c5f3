package vessels

import (
	"context"
	"log/slog"
	"net/url"
)

// VesselFinder queries the VesselFinder vessels service.
type VesselFinder struct {
	client
	apiKey string
}

// NewVesselFinder creates a VesselFinder registry client.
func NewVesselFinder(cfg *RegistryConfig, logger *slog.Logger) *VesselFinder {
	return &VesselFinder{
		client: newClient("vesselfinder", cfg, logger),
		apiKey: cfg.APIKey,
	}
}

func (f *VesselFinder) Name() string { return f.name }

func (f *VesselFinder) Search(ctx context.Context, hints Hints) (*Vessel, error) {
	if hints.Query == "" {
		return nil, nil
	}
	return f.fetch(ctx, url.Values{"name": {hints.Query}})
}

func (f *VesselFinder) LookupMMSI(ctx context.Context, mmsi string) (*Vessel, error) {
	return f.fetch(ctx, url.Values{"mmsi": {mmsi}})
}

func (f *VesselFinder) LookupIMO(ctx context.Context, imo string) (*Vessel, error) {
	return f.fetch(ctx, url.Values{"imo": {imo}})
}

func (f *VesselFinder) fetch(ctx context.Context, q url.Values) (*Vessel, error) {
	q.Set("userkey", f.apiKey)
	body, err := f.get(ctx, f.baseURL+"/vessels?"+q.Encode())
	if err != nil || body == nil {
		return nil, err
	}
	return parseVesselFinder(body)
}

// parseVesselFinder reads the first record of a VesselFinder payload. The
// master data type is preferred over the numeric AIS ship type.
func parseVesselFinder(body []byte) (*Vessel, error) {
	r, err := firstRecord("vesselfinder", body)
	if err != nil || r == nil {
		return nil, err
	}

	typ := scalar(r, "MASTERDATA", "TYPE")
	if typ == "" {
		typ = scalar(r, "AIS", "TYPE")
	}

	v := &Vessel{
		Name:     scalar(r, "AIS", "NAME"),
		MMSI:     scalar(r, "AIS", "MMSI"),
		IMO:      scalar(r, "AIS", "IMO"),
		Type:     titleCase(typ),
		Length:   withUnit(scalar(r, "MASTERDATA", "LENGTH"), "m"),
		Tonnage:  withUnit(scalar(r, "MASTERDATA", "DWT"), " GT"),
		Owner:    scalar(r, "MASTERDATA", "OWNER"),
		Location: scalar(r, "AIS", "DESTINATION"),
		Flag:     scalar(r, "MASTERDATA", "FLAG"),
	}
	if v.Name == "" && v.MMSI == "" && v.IMO == "" {
		return nil, nil
	}
	return v, nil
}
