package worksheet

import (
	"github.com/gompdf/worksheet/internal/activity"
	"github.com/gompdf/worksheet/pkg/api"
)

type Generator = api.Generator
type Options = api.Options
type Option = api.Option
type Config = api.Config
type Estimation = api.Estimation
type Meter = api.Meter
type Result = api.Result
type Progress = api.Progress
type Activity = activity.Type

func New() *Generator                           { return api.New() }
func NewWithOptions(options Options) *Generator { return api.NewWithOptions(options) }
func DefaultOptions() Options                   { return api.DefaultOptions() }
func DefaultConfig() Config                     { return api.DefaultConfig() }

var (
	WithScale         = api.WithScale
	WithConcurrency   = api.WithConcurrency
	WithSeed          = api.WithSeed
	WithLogoSize      = api.WithLogoSize
	WithBaseURL       = api.WithBaseURL
	WithResourcePath  = api.WithResourcePath
	WithFontDirectory = api.WithFontDirectory
	WithBrand         = api.WithBrand
	WithRepository    = api.WithRepository
	ParseActivities   = activity.ParseList
)

const (
	Tracing              = activity.Tracing
	CopyLines            = activity.CopyLines
	TajwidColor          = activity.TajwidColor
	MCQMeaning           = activity.MCQMeaning
	MatchAyahTranslation = activity.MatchAyahTranslation
	FillInBlank          = activity.FillInBlank
	WordMeaning          = activity.WordMeaning
	MemorizationCard     = activity.MemorizationCard
	ReorderWords         = activity.ReorderWords
	PuzzleAyah           = activity.PuzzleAyah
)
