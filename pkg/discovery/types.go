package discovery

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// ServiceTypeRTSP is the DNS-SD service type for camera streams.
	ServiceTypeRTSP = "_rtsp._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultPort is the default RTSP port.
	DefaultPort = 554

	// BrowseTimeout is the default timeout for mDNS browsing.
	BrowseTimeout = 10 * time.Second

	// MaxInstanceNameLen is the DNS-SD instance name limit.
	MaxInstanceNameLen = 63
)

// Errors returned by discovery operations.
var (
	ErrBrowseTimeout = errors.New("browse timeout")
	ErrNotFound      = errors.New("stream not found")
)

// StreamInfo describes an advertised camera stream.
type StreamInfo struct {
	// Vendor and Model identify the camera hardware. Variant detection
	// in the driver matches substrings of Model.
	Vendor string
	Model  string

	// Serial is the camera serial number.
	Serial string

	// Path is the RTSP URL path ("/live" etc).
	Path string

	// Port is the RTSP port. Zero means DefaultPort.
	Port uint16

	// FrameWidth and FrameHeight describe the advertised video frame.
	// Zero means unadvertised.
	FrameWidth  int
	FrameHeight int
}

// StreamService is a discovered camera stream.
type StreamService struct {
	// InstanceName is the DNS-SD instance name.
	InstanceName string

	// Host is the advertised hostname.
	Host string

	// Port is the RTSP port.
	Port uint16

	// Addresses are all known IP addresses, aggregated across
	// interfaces.
	Addresses []string

	Vendor string
	Model  string
	Serial string
	Path   string

	// FrameWidth and FrameHeight are the advertised video frame
	// dimensions, or zero when the stream does not advertise them.
	FrameWidth  int
	FrameHeight int
}

// URL renders an RTSP URL for the first known address.
// Returns the empty string when no address is known.
func (s *StreamService) URL() string {
	if len(s.Addresses) == 0 {
		return ""
	}
	path := s.Path
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("rtsp://%s:%d%s", s.Addresses[0], s.Port, path)
}

// containsFold reports whether substr occurs in s, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// TXT record keys.
const (
	txtKeyVendor = "vn"
	txtKeyModel  = "md"
	txtKeySerial = "sn"
	txtKeyPath   = "pt"
	txtKeyWidth  = "fw"
	txtKeyHeight = "fh"
)

// EncodeStreamTXT builds the TXT record strings for a stream.
func EncodeStreamTXT(info *StreamInfo) []string {
	txt := []string{
		txtKeyVendor + "=" + info.Vendor,
		txtKeyModel + "=" + info.Model,
	}
	if info.Serial != "" {
		txt = append(txt, txtKeySerial+"="+info.Serial)
	}
	if info.Path != "" {
		txt = append(txt, txtKeyPath+"="+info.Path)
	}
	if info.FrameWidth > 0 && info.FrameHeight > 0 {
		txt = append(txt, txtKeyWidth+"="+strconv.Itoa(info.FrameWidth))
		txt = append(txt, txtKeyHeight+"="+strconv.Itoa(info.FrameHeight))
	}
	return txt
}

// DecodeStreamTXT parses TXT record strings into a StreamInfo.
// Records missing the model key are not camera streams.
func DecodeStreamTXT(txt []string) (*StreamInfo, error) {
	info := &StreamInfo{}
	for _, record := range txt {
		key, value, ok := strings.Cut(record, "=")
		if !ok {
			continue
		}
		switch key {
		case txtKeyVendor:
			info.Vendor = value
		case txtKeyModel:
			info.Model = value
		case txtKeySerial:
			info.Serial = value
		case txtKeyPath:
			info.Path = value
		case txtKeyWidth:
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				info.FrameWidth = n
			}
		case txtKeyHeight:
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				info.FrameHeight = n
			}
		}
	}
	if info.Model == "" {
		return nil, fmt.Errorf("TXT record has no model key")
	}
	return info, nil
}
