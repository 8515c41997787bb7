package service

import (
	"context"
	"fmt"
	"strings"
)

// AssistantService generates and rewrites site copy for administrators:
// therapist bios, blog drafts, service descriptions. Stateless, no
// caching, direct LLM calls.
type AssistantService struct {
	chat ChatClient
}

func NewAssistantService(chat ChatClient) *AssistantService {
	return &AssistantService{chat: chat}
}

type BioRequest struct {
	Name            string   `json:"name" binding:"required"`
	Credentials     string   `json:"credentials" binding:"required"`
	Specialties     []string `json:"specialties" binding:"required"`
	YearsExperience int      `json:"years_experience"`
	Approach        string   `json:"approach"`
	AdditionalInfo  string   `json:"additional_info"`
}

// GenerateBio writes a first-person therapist bio from structured facts.
func (s *AssistantService) GenerateBio(ctx context.Context, req BioRequest) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a professional, compassionate therapist bio for %s, %s.\n\n", req.Name, req.Credentials)
	fmt.Fprintf(&sb, "Specialties: %s\n", strings.Join(req.Specialties, ", "))
	if req.YearsExperience > 0 {
		fmt.Fprintf(&sb, "Years of Experience: %d\n", req.YearsExperience)
	}
	if req.Approach != "" {
		fmt.Fprintf(&sb, "Therapeutic Approach: %s\n", req.Approach)
	}
	if req.AdditionalInfo != "" {
		fmt.Fprintf(&sb, "Additional Info: %s\n", req.AdditionalInfo)
	}
	sb.WriteString(`
Requirements:
- Write in first person ("I" perspective)
- 150-200 words
- Professional yet warm and approachable tone
- Emphasize compassion, expertise, and creating a safe space
- Include specific mention of specialties
- End with an invitation to connect or schedule a session
- Do not include any markdown formatting or special characters`)

	system := "You are an expert therapist bio writer. Write professional, compassionate, and engaging therapist biographies that help clients feel comfortable reaching out."

	text, err := s.chat.Chat(ctx, system, sb.String())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

type RewriteRequest struct {
	Text         string `json:"text" binding:"required"`
	Purpose      string `json:"purpose" binding:"required,oneof=therapist_bio blog_post service_description general"`
	Instructions string `json:"instructions"`
	Tone         string `json:"tone" binding:"omitempty,oneof=professional warm casual academic empathetic"`
}

var purposeContext = map[string]string{
	"therapist_bio":       "This is a therapist biography that should be professional, compassionate, and help clients feel comfortable.",
	"blog_post":           "This is a blog post about mental health that should be informative, engaging, and accessible.",
	"service_description": "This is a service description that should be clear, concise, and highlight benefits.",
	"general":             "This is general content that should be well-written and clear.",
}

type BlogContentRequest struct {
	Topic            string   `json:"topic" binding:"required"`
	Keywords         []string `json:"keywords"`
	TargetLength     string   `json:"target_length" binding:"omitempty,oneof=short medium long"`
	IncludeAffiliate *bool    `json:"include_affiliate"` // nil means true
	OutlineOnly      bool     `json:"outline_only"`
}

type BlogContent struct {
	Content string `json:"content"`
	Type    string `json:"type"` // outline, full
}

var lengthGuidance = map[string]string{
	"short":  "500-700 words",
	"medium": "1000-1500 words",
	"long":   "2000-2500 words",
}

// GenerateBlogContent drafts either an outline or a full post on a
// mental health topic.
func (s *AssistantService) GenerateBlogContent(ctx context.Context, req BlogContentRequest) (*BlogContent, error) {
	if req.TargetLength == "" {
		req.TargetLength = "medium"
	}

	affiliateNote := "\n- Include a natural call-to-action at the end mentioning BetterHelp for professional support"
	if req.IncludeAffiliate != nil && !*req.IncludeAffiliate {
		affiliateNote = ""
	}

	keywordsLine := ""
	if len(req.Keywords) > 0 {
		keywordsLine = strings.Join(req.Keywords, ", ")
	}

	if req.OutlineOnly {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Create a detailed outline for a blog post about: %s\n\n", req.Topic)
		if keywordsLine != "" {
			fmt.Fprintf(&sb, "Keywords to include: %s\n\n", keywordsLine)
		}
		sb.WriteString(`Requirements:
- Create 5-7 main sections with H2 headings
- Include 2-3 subsections under each main section
- Each section should have a brief description
- Focus on providing value and actionable advice
- Target audience: people seeking mental health information` + affiliateNote)

		system := "You are an expert mental health content strategist. Create comprehensive, well-structured blog post outlines."

		text, err := s.chat.Chat(ctx, system, sb.String())
		if err != nil {
			return nil, err
		}
		return &BlogContent{Content: strings.TrimSpace(text), Type: "outline"}, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a comprehensive blog post about: %s\n\n", req.Topic)
	if keywordsLine != "" {
		fmt.Fprintf(&sb, "Keywords to naturally incorporate: %s\n", keywordsLine)
	}
	fmt.Fprintf(&sb, "Target length: %s\n\n", lengthGuidance[req.TargetLength])
	sb.WriteString(`Requirements:
- Write in an informative, empathetic, and accessible style
- Use clear headings (H2, H3) to structure the content
- Include practical tips and actionable advice
- Cite general mental health best practices (no specific sources needed)
- Use markdown formatting for headings and lists
- Include an engaging introduction and conclusion` + affiliateNote + `
- Write for a general audience seeking mental health information`)

	system := "You are an expert mental health writer. Create informative, compassionate, and evidence-based blog posts that help readers understand mental health topics."

	text, err := s.chat.Chat(ctx, system, sb.String())
	if err != nil {
		return nil, err
	}
	return &BlogContent{Content: strings.TrimSpace(text), Type: "full"}, nil
}

type ServiceDescriptionRequest struct {
	ServiceName    string   `json:"service_name" binding:"required"`
	Benefits       []string `json:"benefits"`
	TargetAudience string   `json:"target_audience"`
}

// GenerateServiceDescription writes short marketing copy for a service
// page.
func (s *AssistantService) GenerateServiceDescription(ctx context.Context, req ServiceDescriptionRequest) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a compelling service description for: %s\n\n", req.ServiceName)
	if len(req.Benefits) > 0 {
		fmt.Fprintf(&sb, "Key benefits: %s\n", strings.Join(req.Benefits, ", "))
	}
	if req.TargetAudience != "" {
		fmt.Fprintf(&sb, "Target audience: %s\n", req.TargetAudience)
	}
	sb.WriteString(`
Requirements:
- 100-150 words
- Focus on benefits and outcomes
- Use clear, accessible language
- Emphasize how this service helps people
- Professional yet approachable tone
- Do not use markdown formatting`)

	system := "You are an expert at writing compelling service descriptions for mental health services. Focus on benefits and outcomes."

	text, err := s.chat.Chat(ctx, system, sb.String())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

type ImproveContentRequest struct {
	Text            string `json:"text" binding:"required"`
	ImprovementType string `json:"improvement_type" binding:"required,oneof=clarity engagement seo compassion professionalism"`
}

type ImprovedContent struct {
	ImprovedText string `json:"improved_text"`
	Changes      string `json:"changes"`
}

var improvementGuidance = map[string]string{
	"clarity":         "Focus on making the text clearer and easier to understand. Simplify complex sentences and remove jargon.",
	"engagement":      "Make the text more engaging and compelling. Add hooks, improve flow, and make it more interesting to read.",
	"seo":             "Optimize for search engines while maintaining readability. Incorporate relevant keywords naturally and improve structure.",
	"compassion":      "Enhance the empathetic and compassionate tone. Make readers feel understood and supported.",
	"professionalism": "Improve the professional tone while maintaining warmth. Ensure credibility and expertise shine through.",
}

// ImproveContent rewrites text with a targeted focus and reports what
// changed. The model is asked for a two-part labeled response which is
// split back apart here.
func (s *AssistantService) ImproveContent(ctx context.Context, req ImproveContentRequest) (*ImprovedContent, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Improve the following text with a focus on: %s\n\n", req.ImprovementType)
	fmt.Fprintf(&sb, "Guidance: %s\n\n", improvementGuidance[req.ImprovementType])
	fmt.Fprintf(&sb, "Original text:\n%s\n\n", req.Text)
	sb.WriteString(`Provide:
1. The improved version of the text
2. A brief explanation of the key changes made

Format your response as:
IMPROVED TEXT:
[improved text here]

CHANGES:
[brief explanation]`)

	system := "You are an expert content editor specializing in mental health content. Provide specific, actionable improvements."

	text, err := s.chat.Chat(ctx, system, sb.String())
	if err != nil {
		return nil, err
	}

	parts := strings.SplitN(text, "CHANGES:", 2)
	improved := strings.TrimSpace(strings.Replace(parts[0], "IMPROVED TEXT:", "", 1))
	changes := "Improvements applied."
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		changes = strings.TrimSpace(parts[1])
	}

	return &ImprovedContent{ImprovedText: improved, Changes: changes}, nil
}

// Rewrite improves existing text while preserving its message.
func (s *AssistantService) Rewrite(ctx context.Context, req RewriteRequest) (string, error) {
	toneGuidance := "Use an appropriate professional tone."
	if req.Tone != "" {
		toneGuidance = fmt.Sprintf("Use a %s tone.", req.Tone)
	}

	var sb strings.Builder
	sb.WriteString("Rewrite the following text to improve its quality:\n\n")
	sb.WriteString(purposeContext[req.Purpose] + "\n")
	sb.WriteString(toneGuidance + "\n")
	if req.Instructions != "" {
		fmt.Fprintf(&sb, "Additional instructions: %s\n", req.Instructions)
	}
	fmt.Fprintf(&sb, "\nOriginal text:\n%s\n", req.Text)
	sb.WriteString(`
Requirements:
- Maintain the core message and key information
- Improve clarity, flow, and readability
- Fix any grammar or spelling issues
- Keep approximately the same length
- Do not add markdown formatting
- Return only the rewritten text`)

	system := "You are an expert content editor specializing in mental health and therapy content. Rewrite text to be clear, engaging, and professional."

	text, err := s.chat.Chat(ctx, system, sb.String())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
