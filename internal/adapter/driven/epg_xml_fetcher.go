package driven

import (
	"bufio"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/alorle/tvdesk/internal/epg"
	"github.com/alorle/tvdesk/internal/port/driven"
)

const (
	// DefaultEPGWindow is how far ahead of now programmes are kept.
	DefaultEPGWindow = 8 * time.Hour

	defaultEPGTimeout      = 60 * time.Second
	defaultEPGMaxBodyBytes = 256 << 20
)

var gzipMagic = []byte{0x1f, 0x8b}

// EPGFetcherConfig configures EPGXMLFetcher. Zero values select the defaults.
type EPGFetcherConfig struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
	Window       time.Duration
}

// EPGXMLFetcher fetches XMLTV guides via HTTP. Gzip-compressed guides are
// detected by their magic bytes and decompressed transparently.
// It implements the driven.EPGFetcher port.
type EPGXMLFetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
	window       time.Duration
}

// NewEPGXMLFetcher creates a new EPG XML fetcher.
// If client is nil, it creates a default HTTP client with the configured timeout.
func NewEPGXMLFetcher(cfg EPGFetcherConfig, client *http.Client) *EPGXMLFetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultEPGTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultEPGMaxBodyBytes
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultEPGWindow
	}
	if client == nil {
		client = &http.Client{
			Timeout: cfg.Timeout,
		}
	}
	return &EPGXMLFetcher{
		client:       client,
		userAgent:    cfg.UserAgent,
		maxBodyBytes: cfg.MaxBodyBytes,
		window:       cfg.Window,
	}
}

// FetchGuide downloads and parses the XMLTV document at url.
// Only programmes of channelIDs are kept, all channels when channelIDs is
// empty. Programmes that ended before now or start after now plus the
// window are dropped. Programmes with unparseable times are skipped.
// Malformed XML is reported as epg.ErrInvalidEPGFormat.
func (f *EPGXMLFetcher) FetchGuide(ctx context.Context, url string, channelIDs []string, now time.Time) (epg.Guide, error) {
	req, err := newGetRequest(ctx, url)
	if err != nil {
		return epg.Guide{}, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := do(f.client, req)
	if err != nil {
		return epg.Guide{}, err
	}
	defer resp.Body.Close()

	body, err := decompress(http.MaxBytesReader(nil, resp.Body, f.maxBodyBytes))
	if err != nil {
		return epg.Guide{}, err
	}

	programs, err := f.decode(body, channelFilter(channelIDs), now)
	if err != nil {
		return epg.Guide{}, err
	}

	return epg.NewGuide(url, now, programs), nil
}

func (f *EPGXMLFetcher) decode(r io.Reader, wanted map[string]bool, now time.Time) ([]epg.Program, error) {
	horizon := now.Add(f.window)

	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var programs []epg.Program
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return programs, nil
		}
		if err != nil {
			return nil, classifyXMLError(err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "programme" {
			continue
		}

		var item programmeXML
		if err := dec.DecodeElement(&item, &start); err != nil {
			return nil, classifyXMLError(err)
		}

		if len(wanted) > 0 && !wanted[item.Channel] {
			continue
		}

		p, ok := item.toProgram()
		if !ok || p.End.Before(now) || p.Start.After(horizon) {
			continue
		}
		programs = append(programs, p)
	}
}

// decompress returns a reader over the plain document, unwrapping gzip when
// the body starts with the gzip magic bytes.
func decompress(body io.Reader) (io.Reader, error) {
	br := bufio.NewReader(body)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", driven.ErrBodyRead, err)
	}
	if !bytes.Equal(head, gzipMagic) {
		return br, nil
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", driven.ErrBodyRead, err)
	}
	return zr, nil
}

func classifyXMLError(err error) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Errorf("%w: %v", epg.ErrInvalidEPGFormat, err)
	}
	return fmt.Errorf("%w: %v", driven.ErrBodyRead, err)
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported charset %q", epg.ErrInvalidEPGFormat, label)
	}
	return enc.NewDecoder().Reader(input), nil
}

func channelFilter(ids []string) map[string]bool {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			wanted[id] = true
		}
	}
	return wanted
}

// programmeXML represents a programme element in the XMLTV document.
type programmeXML struct {
	Start      string   `xml:"start,attr"`
	Stop       string   `xml:"stop,attr"`
	Channel    string   `xml:"channel,attr"`
	Titles     []string `xml:"title"`
	Descs      []string `xml:"desc"`
	Categories []string `xml:"category"`
}

func (x programmeXML) toProgram() (epg.Program, bool) {
	start, err := epg.ParseXMLTVTime(x.Start)
	if err != nil {
		return epg.Program{}, false
	}
	end, err := epg.ParseXMLTVTime(x.Stop)
	if err != nil {
		return epg.Program{}, false
	}

	p, err := epg.NewProgram(x.Channel, first(x.Titles), first(x.Descs), first(x.Categories), start, end)
	if err != nil {
		return epg.Program{}, false
	}
	return p, true
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
