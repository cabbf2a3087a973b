package domain

import (
	"fmt"
	"time"
)

// for debug
func (p *Post) String() string {
	return fmt.Sprintf("[id:%d, author:%s, title:%s, category:%d, created:%s, views:%d]",
		p.Id, p.Author, p.Title, p.Category, p.CreatedAt.Format(time.StampMilli), p.ViewCount)
}

func (s PostSummary) String() string {
	return fmt.Sprintf("[id:%d, author:%s, title:%s, category:%d, created:%s]",
		s.Id, s.Author, s.Title, s.Category, s.CreatedAt.Format(time.StampMilli))
}
