package dashboard

import (
	"context"

	"github.com/plaindes/cms-backend/pkg/enums"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
)

// StatsDTO summarizes content and inbox totals for the admin overview.
type StatsDTO struct {
	Pages struct {
		Total     int64 `json:"total"`
		Published int64 `json:"published"`
		Draft     int64 `json:"draft"`
	} `json:"pages"`
	Contents struct {
		Total     int64 `json:"total"`
		Published int64 `json:"published"`
		Draft     int64 `json:"draft"`
		Archived  int64 `json:"archived"`
	} `json:"contents"`
	Messages struct {
		Total   int64 `json:"total"`
		Unread  int64 `json:"unread"`
		Read    int64 `json:"read"`
		Replied int64 `json:"replied"`
	} `json:"messages"`
	MediaCount  int64 `json:"media_count"`
	ActiveUsers int64 `json:"active_users"`
}

// Service computes the admin dashboard stats.
type Service interface {
	Stats(ctx context.Context) (*StatsDTO, error)
}

type pageCounter interface {
	CountByStatus(ctx context.Context) (map[enums.PageStatus]int64, error)
}

type contentCounter interface {
	CountByStatus(ctx context.Context) (map[enums.ContentStatus]int64, error)
}

type messageCounter interface {
	CountByStatus(ctx context.Context) (map[enums.MessageStatus]int64, error)
}

type mediaCounter interface {
	Count(ctx context.Context) (int64, error)
}

type userCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

type service struct {
	pages    pageCounter
	contents contentCounter
	messages messageCounter
	media    mediaCounter
	users    userCounter
}

// NewService constructs the dashboard service.
func NewService(pages pageCounter, contents contentCounter, messages messageCounter, media mediaCounter, users userCounter) (Service, error) {
	if pages == nil || contents == nil || messages == nil || media == nil || users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "all counters are required")
	}
	return &service{pages: pages, contents: contents, messages: messages, media: media, users: users}, nil
}

func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	stats := &StatsDTO{}

	pageCounts, err := s.pages.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count pages")
	}
	stats.Pages.Published = pageCounts[enums.PageStatusPublished]
	stats.Pages.Draft = pageCounts[enums.PageStatusDraft]
	stats.Pages.Total = stats.Pages.Published + stats.Pages.Draft

	contentCounts, err := s.contents.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count contents")
	}
	stats.Contents.Published = contentCounts[enums.ContentStatusPublished]
	stats.Contents.Draft = contentCounts[enums.ContentStatusDraft]
	stats.Contents.Archived = contentCounts[enums.ContentStatusArchived]
	stats.Contents.Total = stats.Contents.Published + stats.Contents.Draft + stats.Contents.Archived

	messageCounts, err := s.messages.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count messages")
	}
	stats.Messages.Unread = messageCounts[enums.MessageStatusUnread]
	stats.Messages.Read = messageCounts[enums.MessageStatusRead]
	stats.Messages.Replied = messageCounts[enums.MessageStatusReplied]
	stats.Messages.Total = stats.Messages.Unread + stats.Messages.Read + stats.Messages.Replied

	mediaCount, err := s.media.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count media")
	}
	stats.MediaCount = mediaCount

	activeUsers, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count users")
	}
	stats.ActiveUsers = activeUsers

	return stats, nil
}
