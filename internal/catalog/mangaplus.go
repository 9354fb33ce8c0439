package catalog

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SourceMangaPlus is the source name and canonical ID prefix for MangaPlus.
const SourceMangaPlus = "plus"

// MangaPlus adapts the MangaPlus web API. Responses wrap a per-endpoint view
// under a "success" envelope; titles carry a single language each; chapter
// lists are split into first/mid/last groups and gated chapters are not
// viewable. The API has no search or pagination parameters, so both are
// applied client-side over the full title list.
type MangaPlus struct {
	client   apiClient
	pageSize int
	logger   *slog.Logger
}

// NewMangaPlus creates a MangaPlus source from the catalog configuration.
func NewMangaPlus(cfg *Config, logger *slog.Logger) *MangaPlus {
	return &MangaPlus{
		client: apiClient{
			base: cfg.MangaPlusURL,
			http: &http.Client{Timeout: cfg.RequestTimeoutDuration()},
		},
		pageSize: cfg.PageSize,
		logger:   logger.With("source", SourceMangaPlus),
	}
}

func (s *MangaPlus) Name() string { return SourceMangaPlus }

func (s *MangaPlus) Search(ctx context.Context, query string, page int, lang string) (*MangaPage, error) {
	var env plusEnvelope
	if err := s.client.getJSON(ctx, "/title_list/allV2", nil, &env); err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matched := make([]Manga, 0)
	for _, title := range env.Success.AllTitlesView.Titles {
		if !matchesLanguage(title, lang) {
			continue
		}
		if strings.Contains(strings.ToLower(title.Name), needle) ||
			strings.Contains(strings.ToLower(title.Author), needle) {
			matched = append(matched, mapPlusTitle(title))
		}
	}

	return paginate(matched, page, s.pageSize), nil
}

func (s *MangaPlus) Popular(ctx context.Context, page int, lang string) (*MangaPage, error) {
	var env plusEnvelope
	if err := s.client.getJSON(ctx, "/title_list/rankingV2", nil, &env); err != nil {
		return nil, err
	}

	ranked := make([]Manga, 0, len(env.Success.TitleRankingView.Titles))
	for _, title := range env.Success.TitleRankingView.Titles {
		if matchesLanguage(title, lang) {
			ranked = append(ranked, mapPlusTitle(title))
		}
	}

	return paginate(ranked, page, s.pageSize), nil
}

func (s *MangaPlus) Latest(ctx context.Context, page int, lang string) (*MangaPage, error) {
	var env plusEnvelope
	if err := s.client.getJSON(ctx, "/web/web_homepage", nil, &env); err != nil {
		return nil, err
	}

	updated := make([]Manga, 0)
	for _, group := range env.Success.WebHomepageView.Groups {
		for _, entry := range group.Titles {
			if matchesLanguage(entry.Title, lang) {
				updated = append(updated, mapPlusTitle(entry.Title))
			}
		}
	}

	return paginate(updated, page, s.pageSize), nil
}

func (s *MangaPlus) Manga(ctx context.Context, nativeID, lang string) (*Manga, error) {
	detail, err := s.titleDetail(ctx, nativeID)
	if err != nil {
		return nil, err
	}

	m := mapPlusTitle(detail.Title)
	m.Description = detail.Overview
	return &m, nil
}

func (s *MangaPlus) Chapters(ctx context.Context, nativeID string, page int, lang string) (*ChapterPage, error) {
	detail, err := s.titleDetail(ctx, nativeID)
	if err != nil {
		return nil, err
	}

	language := plusLanguageCode(detail.Title.Language)
	chapters := make([]Chapter, 0)
	for _, group := range detail.ChapterListGroup {
		for _, list := range [][]plusChapter{group.FirstChapterList, group.MidChapterList, group.LastChapterList} {
			for _, ch := range list {
				chapters = append(chapters, Chapter{
					ID:          ComposeID(SourceMangaPlus, strconv.Itoa(ch.ChapterID)),
					MangaID:     ComposeID(SourceMangaPlus, nativeID),
					Number:      strings.TrimPrefix(ch.Name, "#"),
					Title:       ch.SubTitle,
					Language:    language,
					PublishedAt: time.Unix(ch.StartTimestamp, 0).UTC(),
				})
			}
		}
	}

	start := (page - 1) * s.pageSize
	if start > len(chapters) {
		start = len(chapters)
	}
	end := min(start+s.pageSize, len(chapters))

	return &ChapterPage{
		Items:   chapters[start:end],
		Page:    page,
		HasMore: end < len(chapters),
	}, nil
}

func (s *MangaPlus) Pages(ctx context.Context, nativeID string) (*PageSet, error) {
	params := url.Values{}
	params.Set("chapter_id", nativeID)
	params.Set("split", "yes")
	params.Set("img_quality", "high")

	var env plusEnvelope
	if err := s.client.getJSON(ctx, "/manga_viewer", params, &env); err != nil {
		return nil, err
	}

	pages := make([]string, 0, len(env.Success.MangaViewer.Pages))
	for _, p := range env.Success.MangaViewer.Pages {
		if p.MangaPage.ImageURL != "" {
			pages = append(pages, p.MangaPage.ImageURL)
		}
	}

	if len(pages) == 0 {
		return nil, ErrChapterUnavailable
	}

	return &PageSet{
		ChapterID: ComposeID(SourceMangaPlus, nativeID),
		Pages:     pages,
	}, nil
}

func (s *MangaPlus) titleDetail(ctx context.Context, nativeID string) (*plusTitleDetailView, error) {
	if _, err := strconv.Atoi(nativeID); err != nil {
		return nil, ErrNotFound
	}

	params := url.Values{}
	params.Set("title_id", nativeID)

	var env plusEnvelope
	if err := s.client.getJSON(ctx, "/title_detailV3", params, &env); err != nil {
		return nil, err
	}

	if env.Success.TitleDetailView.Title.TitleID == 0 {
		return nil, ErrNotFound
	}

	return &env.Success.TitleDetailView, nil
}

func paginate(items []Manga, page, pageSize int) *MangaPage {
	start := (page - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := min(start+pageSize, len(items))

	return &MangaPage{
		Items:   items[start:end],
		Page:    page,
		HasMore: end < len(items),
	}
}

func matchesLanguage(title plusTitle, lang string) bool {
	if lang == "" {
		return true
	}
	return plusLanguageCode(title.Language) == lang
}

func mapPlusTitle(title plusTitle) Manga {
	nativeID := strconv.Itoa(title.TitleID)
	code := plusLanguageCode(title.Language)

	var authors []string
	if title.Author != "" {
		authors = []string{title.Author}
	}

	return Manga{
		ID:        ComposeID(SourceMangaPlus, nativeID),
		Source:    SourceMangaPlus,
		Title:     title.Name,
		CoverURL:  title.PortraitImageURL,
		Authors:   authors,
		Languages: []string{code},
	}
}

// plusLanguageCode maps MangaPlus language names to ISO codes.
// An absent language means English.
func plusLanguageCode(name string) string {
	switch strings.ToLower(name) {
	case "", "english":
		return "en"
	case "spanish":
		return "es"
	case "french":
		return "fr"
	case "german":
		return "de"
	case "indonesian":
		return "id"
	case "portuguese_br":
		return "pt-br"
	case "russian":
		return "ru"
	case "thai":
		return "th"
	case "vietnamese":
		return "vi"
	default:
		return strings.ToLower(name)
	}
}

// MangaPlus wire types. Every endpoint wraps its view in a success envelope.

type plusEnvelope struct {
	Success struct {
		AllTitlesView struct {
			Titles []plusTitle `json:"titles"`
		} `json:"all_titles_view"`
		TitleRankingView struct {
			Titles []plusTitle `json:"titles"`
		} `json:"title_ranking_view"`
		WebHomepageView struct {
			Groups []struct {
				Titles []struct {
					Title plusTitle `json:"title"`
				} `json:"titles"`
			} `json:"groups"`
		} `json:"web_homepage_view"`
		TitleDetailView plusTitleDetailView `json:"title_detail_view"`
		MangaViewer     struct {
			Pages []struct {
				MangaPage struct {
					ImageURL string `json:"image_url"`
				} `json:"manga_page"`
			} `json:"pages"`
		} `json:"manga_viewer"`
	} `json:"success"`
}

type plusTitle struct {
	TitleID          int    `json:"title_id"`
	Name             string `json:"name"`
	Author           string `json:"author"`
	PortraitImageURL string `json:"portrait_image_url"`
	Language         string `json:"language"`
}

type plusTitleDetailView struct {
	Title            plusTitle `json:"title"`
	Overview         string    `json:"overview"`
	ChapterListGroup []struct {
		FirstChapterList []plusChapter `json:"first_chapter_list"`
		MidChapterList   []plusChapter `json:"mid_chapter_list"`
		LastChapterList  []plusChapter `json:"last_chapter_list"`
	} `json:"chapter_list_group"`
}

type plusChapter struct {
	ChapterID      int    `json:"chapter_id"`
	Name           string `json:"name"`
	SubTitle       string `json:"sub_title"`
	StartTimestamp int64  `json:"start_time_stamp"`
}
