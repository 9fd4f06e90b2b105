// Package article extracts readable text from news pages.
package article

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	nurl "net/url"
	"strings"
	"syscall"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/doeshing/fakenews-go/internal/domain"
	"github.com/doeshing/fakenews-go/internal/ports"
)

// Fetcher downloads a page and runs it through readability.
type Fetcher struct {
	client   *http.Client
	maxChars int
}

// NewFetcher creates a Fetcher with the given request timeout. Unless
// allowPrivate is set, connections to loopback, private and link-local
// addresses are refused at dial time, redirects included.
func NewFetcher(timeout time.Duration, maxChars int, allowPrivate bool) *Fetcher {
	client := &http.Client{Timeout: timeout}
	if !allowPrivate {
		dialer := &net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second, Control: publicOnly}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		// a proxy would hide the real destination from the dial check
		transport.Proxy = nil
		transport.DialContext = dialer.DialContext
		client.Transport = transport
	}
	return NewFetcherWithClient(client, maxChars)
}

// NewFetcherWithClient creates a Fetcher with a custom HTTP client (for testing).
func NewFetcherWithClient(client *http.Client, maxChars int) *Fetcher {
	return &Fetcher{client: client, maxChars: maxChars}
}

// Fetch implements ports.ArticleFetcher.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	pageURL, err := nurl.ParseRequestURI(url)
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") {
		return "", fmt.Errorf("invalid article url %q", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "fakenews/1 (+article fetch)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s returned status %d", url, resp.StatusCode)
	}

	parsed, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return "", fmt.Errorf("extracting content from %s: %w", url, err)
	}

	text := strings.TrimSpace(parsed.TextContent)
	if text == "" {
		return "", fmt.Errorf("no article text found at %s", url)
	}
	if parsed.Title != "" && !strings.HasPrefix(text, parsed.Title) {
		text = parsed.Title + "\n\n" + text
	}
	return clip(text, f.maxChars), nil
}

// publicOnly is a net.Dialer Control hook that runs after DNS resolution.
func publicOnly(_, address string, _ syscall.RawConn) error {
	addrPort, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrNonPublicAddress, address)
	}
	if !isPublic(addrPort.Addr()) {
		return fmt.Errorf("%w: %s", domain.ErrNonPublicAddress, addrPort.Addr())
	}
	return nil
}

var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

func isPublic(addr netip.Addr) bool {
	addr = addr.Unmap()
	switch {
	case !addr.IsValid(),
		addr.IsUnspecified(),
		addr.IsLoopback(),
		addr.IsPrivate(),
		addr.IsLinkLocalUnicast(),
		addr.IsLinkLocalMulticast(),
		addr.IsInterfaceLocalMulticast(),
		addr.IsMulticast(),
		sharedAddressSpace.Contains(addr):
		return false
	}
	return true
}

func clip(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	count := 0
	for i := range text {
		if count == maxChars {
			return text[:i]
		}
		count++
	}
	return text
}

var _ ports.ArticleFetcher = (*Fetcher)(nil)
