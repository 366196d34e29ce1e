// Package seo serves robots.txt and sitemap.xml for the storefront. The
// admin panel and the cart are kept out of search indexes.
package seo

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/julienschmidt/httprouter"
)

func baseURL() string {
	if v := os.Getenv("SITE_BASE_URL"); v != "" {
		return v
	}
	return "https://catashop.cl"
}

// Robots allows everything except /admin and /carrito.
func Robots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /admin\nDisallow: /carrito\n\nSitemap: %s/sitemap.xml\n", baseURL())
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// pages is the public routing surface, with crawl hints.
var pages = []struct {
	path       string
	changeFreq string
	priority   string
}{
	{"", "daily", "1.0"},
	{"/productos", "daily", "0.8"},
	{"/ofertas", "daily", "0.8"},
	{"/galeria", "weekly", "0.5"},
	{"/faq", "monthly", "0.5"},
}

func buildSitemap(base string, now time.Time) urlSet {
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range pages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + p.path,
			LastMod:    now.Format("2006-01-02"),
			ChangeFreq: p.changeFreq,
			Priority:   p.priority,
		})
	}
	return set
}

// Sitemap serves the public pages as sitemap.xml.
func Sitemap(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	set := buildSitemap(baseURL(), time.Now())

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	fmt.Fprint(w, xml.Header)
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		http.Error(w, "Failed to encode sitemap", http.StatusInternalServerError)
	}
}
