package presenter

import (
	"io"
	"time"

	"github.com/WangYihang/site-probe/pkg/domain/entity"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProgressBar implements service.ProgressObserver with a terminal bar
type ProgressBar struct {
	out      io.Writer
	name     string
	width    int
	progress *mpb.Progress
	bar      *mpb.Bar
	last     time.Time
}

// NewProgressBar creates a progress bar writing to out
func NewProgressBar(out io.Writer, name string, width int) *ProgressBar {
	return &ProgressBar{out: out, name: name, width: width}
}

// OnBatchStart implements service.ProgressObserver
func (p *ProgressBar) OnBatchStart(total int) {
	options := []mpb.ContainerOption{mpb.WithOutput(p.out)}
	if p.width > 0 {
		options = append(options, mpb.WithWidth(p.width))
	}
	p.progress = mpb.New(options...)
	p.bar = p.progress.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(p.name, decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("[%d / %d]", decor.WCSyncWidth),
			decor.Percentage(decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncSpace), "done",
			),
		),
	)
	p.last = time.Now()
}

// OnPathChecked implements service.ProgressObserver
func (p *ProgressBar) OnPathChecked(result entity.PathCheckResult, progress entity.BatchProgress) {
	if p.bar == nil {
		return
	}
	now := time.Now()
	p.bar.EwmaSetCurrent(int64(progress.Done), now.Sub(p.last))
	p.last = now
}

// OnBatchEnd implements service.ProgressObserver
func (p *ProgressBar) OnBatchEnd(progress entity.BatchProgress) {
	if p.progress == nil {
		return
	}
	if progress.Done < progress.Total {
		p.bar.Abort(false)
	}
	p.progress.Wait()
}
