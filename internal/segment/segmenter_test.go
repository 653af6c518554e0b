package segment

import (
	"errors"
	"strings"
	"testing"

	"github.com/yuidev/adcomply/internal/model"
)

func TestSegment_Lossless(t *testing.T) {
	inputs := []string{
		"ヒアルロン酸配合。うるおいが続きます。",
		"【今だけ】初回限定50%オフ！\n今すぐお申し込みください。",
		"境界記号のない末尾テキスト",
		"満足度98%。※個人差があります",
		"Ver 1.5 serum. Now available.\n今すぐ購入",
		"一文目。\n\n二文目。",
	}

	s := NewSegmenter(0)
	for _, input := range inputs {
		segments, err := s.Segment(input)
		if err != nil {
			t.Fatalf("Segment(%q) failed: %v", input, err)
		}

		var joined strings.Builder
		for _, seg := range segments {
			joined.WriteString(seg.Text)
		}
		if joined.String() != input {
			t.Errorf("concatenated segments != input\n got: %q\nwant: %q", joined.String(), input)
		}
	}
}

func TestSegment_ContiguousPositions(t *testing.T) {
	input := "【注目】新発売のセラム。\nたった2週間でうるおいを実感！詳しくはこちらから。"

	s := NewSegmenter(0)
	segments, err := s.Segment(input)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	if len(segments) == 0 {
		t.Fatal("expected at least one segment")
	}

	if segments[0].Position.Start != 0 {
		t.Errorf("first segment starts at %d, want 0", segments[0].Position.Start)
	}
	for i := 1; i < len(segments); i++ {
		if segments[i].Position.Start != segments[i-1].Position.End {
			t.Errorf("segment %d starts at %d, previous ends at %d",
				i, segments[i].Position.Start, segments[i-1].Position.End)
		}
	}
	last := segments[len(segments)-1]
	if last.Position.End != len(input) {
		t.Errorf("last segment ends at %d, want %d", last.Position.End, len(input))
	}

	// Positions must index the original bytes exactly
	for _, seg := range segments {
		if input[seg.Position.Start:seg.Position.End] != seg.Text {
			t.Errorf("position slice %q != segment text %q",
				input[seg.Position.Start:seg.Position.End], seg.Text)
		}
	}
}

func TestSegment_StructuralBoundary(t *testing.T) {
	s := NewSegmenter(0)
	segments, err := s.Segment("【医薬部外品】薬用美白セラム")
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Text != "【医薬部外品】" {
		t.Errorf("unexpected first segment: %q", segments[0].Text)
	}
	if segments[1].Text != "薬用美白セラム" {
		t.Errorf("unexpected second segment: %q", segments[1].Text)
	}
}

func TestSegment_ASCIIPeriod(t *testing.T) {
	s := NewSegmenter(0)

	// Decimal point must not split
	segments, err := s.Segment("美容液Ver 1.5が新登場")
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	if len(segments) != 1 {
		t.Errorf("decimal point split the text into %d segments", len(segments))
	}

	// Period before whitespace does split
	segments, err = s.Segment("New serum. Buy now")
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	if len(segments) != 2 {
		t.Errorf("expected 2 segments for sentence period, got %d", len(segments))
	}
}

func TestSegment_BlankLinesNeverSurface(t *testing.T) {
	s := NewSegmenter(0)
	segments, err := s.Segment("一文目。\n\n\n二文目。")
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	for _, seg := range segments {
		if strings.TrimSpace(seg.Text) == "" {
			t.Errorf("whitespace-only segment surfaced: %q", seg.Text)
		}
	}
}

func TestSegment_IDs(t *testing.T) {
	s := NewSegmenter(0)
	segments, err := s.Segment("一文目。二文目。三文目。")
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	for i, seg := range segments {
		want := "seg-" + string(rune('1'+i))
		if seg.ID != want {
			t.Errorf("segment %d has ID %q, want %q", i, seg.ID, want)
		}
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	s := NewSegmenter(0)
	_, err := s.Segment("")
	if !errors.Is(err, model.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestSegment_InputTooLong(t *testing.T) {
	s := NewSegmenter(10)
	_, err := s.Segment(strings.Repeat("あ", 11))
	if !errors.Is(err, model.ErrInputTooLong) {
		t.Errorf("expected ErrInputTooLong, got %v", err)
	}

	// Exactly at the limit is accepted
	if _, err := s.Segment(strings.Repeat("あ", 10)); err != nil {
		t.Errorf("expected input at the limit to be accepted, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want model.SegmentType
	}{
		{"※1 保湿成分", model.SegmentTypeDisclaimer},
		{"※効果には個人差があります", model.SegmentTypeDisclaimer},
		{"満足度98%を達成", model.SegmentTypeEvidence},
		{"モニター調査で実証済み", model.SegmentTypeEvidence},
		{"今すぐお申し込みください", model.SegmentTypeCTA},
		{"期間限定キャンペーン実施中", model.SegmentTypeCTA},
		{"保湿成分を配合しているため、うるおいが続きます", model.SegmentTypeExplanation},
		{"つやのある印象の肌へ導きます。", model.SegmentTypeClaim},
		{"理想の肌を実現", model.SegmentTypeClaim},
		{"限定パッケージ", model.SegmentTypeUnknown},
	}

	for _, tt := range tests {
		if got := classify(tt.text); got != tt.want {
			t.Errorf("classify(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestSegment_UnexpectedSymbolsAccepted(t *testing.T) {
	s := NewSegmenter(0)
	// Emoji and rare symbols must never cause a rejection
	input := "✨🌸新発売🌸✨ 特別なセラム♪"
	segments, err := s.Segment(input)
	if err != nil {
		t.Fatalf("Segment rejected unusual symbols: %v", err)
	}
	var joined strings.Builder
	for _, seg := range segments {
		joined.WriteString(seg.Text)
	}
	if joined.String() != input {
		t.Errorf("lossless property violated for symbol-heavy input")
	}
}
