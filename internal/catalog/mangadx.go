package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"
)

// SourceMangaDx is the source name and canonical ID prefix for MangaDx.
const SourceMangaDx = "dx"

// MangaDx adapts the MangaDx REST API. Entities carry multilingual title and
// description maps plus a relationships array holding cover art filenames and
// author names; chapter feeds paginate by limit/offset.
type MangaDx struct {
	client   apiClient
	covers   string
	pageSize int
	logger   *slog.Logger
}

// NewMangaDx creates a MangaDx source from the catalog configuration.
func NewMangaDx(cfg *Config, logger *slog.Logger) *MangaDx {
	return &MangaDx{
		client: apiClient{
			base: cfg.MangaDxURL,
			http: &http.Client{Timeout: cfg.RequestTimeoutDuration()},
		},
		covers:   cfg.MangaDxCoverURL,
		pageSize: cfg.PageSize,
		logger:   logger.With("source", SourceMangaDx),
	}
}

func (s *MangaDx) Name() string { return SourceMangaDx }

func (s *MangaDx) Search(ctx context.Context, query string, page int, lang string) (*MangaPage, error) {
	params := s.listParams(page, lang)
	params.Set("title", query)
	params.Set("order[relevance]", "desc")
	return s.listManga(ctx, params, page, lang)
}

func (s *MangaDx) Popular(ctx context.Context, page int, lang string) (*MangaPage, error) {
	params := s.listParams(page, lang)
	params.Set("order[followedCount]", "desc")
	return s.listManga(ctx, params, page, lang)
}

func (s *MangaDx) Latest(ctx context.Context, page int, lang string) (*MangaPage, error) {
	params := s.listParams(page, lang)
	params.Set("order[latestUploadedChapter]", "desc")
	return s.listManga(ctx, params, page, lang)
}

func (s *MangaDx) Manga(ctx context.Context, nativeID, lang string) (*Manga, error) {
	var entity dxMangaEntity
	params := url.Values{}
	params.Add("includes[]", "cover_art")
	params.Add("includes[]", "author")

	if err := s.client.getJSON(ctx, "/manga/"+url.PathEscape(nativeID), params, &entity); err != nil {
		return nil, err
	}

	m := s.mapManga(entity.Data, lang)
	return &m, nil
}

func (s *MangaDx) Chapters(ctx context.Context, nativeID string, page int, lang string) (*ChapterPage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(s.pageSize))
	params.Set("offset", strconv.Itoa((page-1)*s.pageSize))
	params.Set("order[chapter]", "asc")
	if lang != "" {
		params.Add("translatedLanguage[]", lang)
	}

	var feed dxChapterFeed
	if err := s.client.getJSON(ctx, "/manga/"+url.PathEscape(nativeID)+"/feed", params, &feed); err != nil {
		return nil, err
	}

	items := make([]Chapter, 0, len(feed.Data))
	for _, ch := range feed.Data {
		items = append(items, Chapter{
			ID:          ComposeID(SourceMangaDx, ch.ID),
			MangaID:     ComposeID(SourceMangaDx, nativeID),
			Number:      ch.Attributes.Chapter,
			Title:       ch.Attributes.Title,
			Volume:      ch.Attributes.Volume,
			Language:    ch.Attributes.TranslatedLanguage,
			Pages:       ch.Attributes.Pages,
			PublishedAt: ch.Attributes.PublishAt,
		})
	}

	return &ChapterPage{
		Items:   items,
		Page:    page,
		HasMore: feed.Offset+len(feed.Data) < feed.Total,
	}, nil
}

func (s *MangaDx) Pages(ctx context.Context, nativeID string) (*PageSet, error) {
	var home dxAtHome
	if err := s.client.getJSON(ctx, "/at-home/server/"+url.PathEscape(nativeID), nil, &home); err != nil {
		return nil, err
	}

	pages := make([]string, 0, len(home.Chapter.Data))
	for _, file := range home.Chapter.Data {
		pages = append(pages, fmt.Sprintf("%s/data/%s/%s", home.BaseURL, home.Chapter.Hash, file))
	}

	return &PageSet{
		ChapterID: ComposeID(SourceMangaDx, nativeID),
		BaseURL:   home.BaseURL,
		Pages:     pages,
	}, nil
}

func (s *MangaDx) listParams(page int, lang string) url.Values {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(s.pageSize))
	params.Set("offset", strconv.Itoa((page-1)*s.pageSize))
	params.Add("includes[]", "cover_art")
	params.Add("includes[]", "author")
	if lang != "" {
		params.Add("availableTranslatedLanguage[]", lang)
	}
	return params
}

func (s *MangaDx) listManga(ctx context.Context, params url.Values, page int, lang string) (*MangaPage, error) {
	var list dxMangaList
	if err := s.client.getJSON(ctx, "/manga", params, &list); err != nil {
		return nil, err
	}

	items := make([]Manga, 0, len(list.Data))
	for _, entity := range list.Data {
		items = append(items, s.mapManga(entity, lang))
	}

	return &MangaPage{
		Items:   items,
		Page:    page,
		HasMore: list.Offset+len(list.Data) < list.Total,
	}, nil
}

func (s *MangaDx) mapManga(entity dxManga, lang string) Manga {
	attr := entity.Attributes

	tags := make([]string, 0, len(attr.Tags))
	for _, tag := range attr.Tags {
		if name := localized(tag.Attributes.Name, lang); name != "" {
			tags = append(tags, name)
		}
	}

	var cover string
	var authors []string
	for _, rel := range entity.Relationships {
		switch rel.Type {
		case "cover_art":
			if rel.Attributes.FileName != "" {
				cover = fmt.Sprintf("%s/%s/%s.256.jpg", s.covers, entity.ID, rel.Attributes.FileName)
			}
		case "author", "artist":
			if rel.Attributes.Name != "" && !slices.Contains(authors, rel.Attributes.Name) {
				authors = append(authors, rel.Attributes.Name)
			}
		}
	}

	return Manga{
		ID:          ComposeID(SourceMangaDx, entity.ID),
		Source:      SourceMangaDx,
		Title:       localized(attr.Title, lang),
		Description: localized(attr.Description, lang),
		CoverURL:    cover,
		Authors:     authors,
		Tags:        tags,
		Status:      attr.Status,
		Languages:   attr.AvailableTranslatedLanguages,
	}
}

// MangaDx wire types. Only the fields the adapter extracts are declared.

type dxMangaList struct {
	Data   []dxManga `json:"data"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

type dxMangaEntity struct {
	Data dxManga `json:"data"`
}

type dxManga struct {
	ID            string            `json:"id"`
	Attributes    dxMangaAttributes `json:"attributes"`
	Relationships []dxRelationship  `json:"relationships"`
}

type dxMangaAttributes struct {
	Title                        map[string]string `json:"title"`
	Description                  map[string]string `json:"description"`
	Status                       string            `json:"status"`
	Tags                         []dxTag           `json:"tags"`
	AvailableTranslatedLanguages []string          `json:"availableTranslatedLanguages"`
}

type dxTag struct {
	Attributes struct {
		Name map[string]string `json:"name"`
	} `json:"attributes"`
}

type dxRelationship struct {
	Type       string `json:"type"`
	Attributes struct {
		FileName string `json:"fileName"`
		Name     string `json:"name"`
	} `json:"attributes"`
}

type dxChapterFeed struct {
	Data   []dxChapter `json:"data"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

type dxChapter struct {
	ID         string `json:"id"`
	Attributes struct {
		Chapter            string    `json:"chapter"`
		Title              string    `json:"title"`
		Volume             string    `json:"volume"`
		TranslatedLanguage string    `json:"translatedLanguage"`
		Pages              int       `json:"pages"`
		PublishAt          time.Time `json:"publishAt"`
	} `json:"attributes"`
}

type dxAtHome struct {
	BaseURL string `json:"baseUrl"`
	Chapter struct {
		Hash string   `json:"hash"`
		Data []string `json:"data"`
	} `json:"chapter"`
}
