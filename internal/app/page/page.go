package page

import (
	"fmt"
	"io"

	"emailcrawler/internal/app/urlnorm"
	"emailcrawler/internal/usecase"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

type page struct {
	doc    *goquery.Document
	logger *zap.Logger
}

func NewPage(raw io.Reader, logger *zap.Logger) (usecase.Page, error) {
	doc, err := goquery.NewDocumentFromReader(raw)
	if err != nil {
		logger.Error("new page error", zap.Error(err))
		return nil, err
	}
	logger.Debug("new page initialize")
	return &page{doc: doc, logger: logger}, nil
}

// Text is the concatenated text of every node, markup removed.
func (p *page) Text() string {
	return p.doc.Text()
}

// Links returns the absolute http(s) targets of all anchors in document order.
func (p *page) Links(base string) []string {
	var urls []string
	p.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		link, ok := urlnorm.ResolveLink(base, href)
		if !ok {
			logMsg := fmt.Sprintf("drop link %q on %s", href, base)
			p.logger.Debug(logMsg)
			return
		}
		urls = append(urls, link)
	})
	return urls
}
