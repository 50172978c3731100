package formatter

import (
	"fmt"
	"strings"

	"github.com/resumesavvy/interview-agent/internal/entity"
)

// Marks distribution: 7 role questions map to 35 marks, 8 resume questions
// to 40 marks, 5 HR questions to 25 marks.
const (
	roleTotalMarks   = 35
	resumeTotalMarks = 40
	techTotalMarks   = roleTotalMarks + resumeTotalMarks
	hrTotalMarks     = 25
	grandTotalMarks  = techTotalMarks + hrTotalMarks

	maxSectionItems = 4
	maxListItems    = 3
)

// BuildReport composes the renderer-agnostic report from the concise
// performance summary of an evaluated interview.
func BuildReport(req *entity.ReportRequest) *Report {
	candidate := req.CandidateName
	if candidate == "" {
		candidate = "Candidate"
	}
	role := req.Role
	if role == "" {
		role = "N/A"
	}

	overall := req.Overall
	if overall == 0 {
		overall = (req.TechnicalScore + req.HRScore) / 2
	}

	roleMarks := int(req.RoleScore * roleTotalMarks / 100)
	resumeMarks := int(req.ResumeScore * resumeTotalMarks / 100)
	techMarks := roleMarks + resumeMarks
	hrMarks := int(req.HRScore * hrTotalMarks / 100)
	totalMarks := techMarks + hrMarks

	report := &Report{
		Title:    fmt.Sprintf("%s - Interview Results", candidate),
		Subtitle: fmt.Sprintf("Role: %s", role),
	}

	if req.RoleScore > 0 {
		report.Scores = append(report.Scores, ScoreRow{"Role-based Technical", roleMarks, roleTotalMarks, int(req.RoleScore)})
	}
	if req.ResumeScore > 0 {
		report.Scores = append(report.Scores, ScoreRow{"Resume-based Technical", resumeMarks, resumeTotalMarks, int(req.ResumeScore)})
	}
	if req.TechnicalScore > 0 {
		report.Scores = append(report.Scores, ScoreRow{"Overall Technical", techMarks, techTotalMarks, int(req.TechnicalScore)})
	}
	if req.HRScore > 0 {
		report.Scores = append(report.Scores, ScoreRow{"HR & Behavioral", hrMarks, hrTotalMarks, int(req.HRScore)})
	}
	report.Scores = append(report.Scores, ScoreRow{"Total Score", totalMarks, grandTotalMarks, int(overall)})

	if desc := hrPerformance(req.HRScore); desc != "" {
		report.Sections = append(report.Sections, Section{Heading: "Performance in HR Interview", Paragraph: desc})
	}

	addListSection(report, "Strengths", req.Strengths, maxListItems)
	addListSection(report, "Technical Feedback", req.TechnicalFeedback, maxSectionItems)
	addListSection(report, "HR / Behavioral Feedback", req.HRFeedback, maxSectionItems)
	addListSection(report, "Communication Feedback", req.CommunicationFeedback, maxSectionItems)
	addListSection(report, "Tips to Improve", req.TipsToImprove, maxSectionItems)
	addListSection(report, "Areas for Improvement", req.Improvements, maxListItems)
	addListSection(report, "Tips to Enhance Knowledge", knowledgeTips(req), maxListItems)

	return report
}

func addListSection(report *Report, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	if len(items) > limit {
		items = items[:limit]
	}
	report.Sections = append(report.Sections, Section{Heading: heading, Items: items})
}

func hrPerformance(score float64) string {
	switch {
	case score == 0:
		return ""
	case score >= 85:
		return "Excellent communication and interpersonal skills demonstrated throughout the interview. The candidate articulated responses clearly, showed strong cultural fit, and demonstrated strong leadership potential and emotional intelligence."
	case score >= 75:
		return "Good communication and behavioral responses. The candidate showed reasonable clarity in expressing ideas, demonstrated team collaboration mindset, and positive attitude towards learning and growth."
	case score >= 65:
		return "Moderate communication skills with some room for improvement. The candidate communicated key points but could enhance clarity and storytelling. STAR method practice would help in articulating experiences more effectively."
	case score >= 50:
		return "Communication and behavioral skills need significant improvement. The candidate should focus on developing clearer articulation of thoughts, using structured storytelling (STAR method), and demonstrating stronger emotional intelligence in interactions."
	default:
		return "Significant improvement needed in communication, interpersonal, and behavioral areas. Consider working with a communication coach, practicing mock interviews, and focusing on developing soft skills and confidence."
	}
}

func knowledgeTips(req *entity.ReportRequest) []string {
	var tips []string

	if req.TechnicalScore > 0 && req.TechnicalScore < 60 {
		tips = append(tips, "Focus on mastering fundamental data structures (arrays, linked lists, trees, hash maps) and their operations.")
	} else if req.TechnicalScore > 0 && req.TechnicalScore < 75 {
		tips = append(tips, "Practice coding problems on LeetCode or HackerRank focusing on your weak areas (arrays, strings, sorting).")
	}

	if req.Role != "" {
		tips = append(tips, roleTip(req.Role))
	}

	if req.HRScore > 0 && req.HRScore < 60 {
		tips = append(tips, "Work on communication and presentation skills - practice articulating your thoughts clearly and concisely.")
	} else if req.HRScore > 0 && req.HRScore < 75 {
		tips = append(tips, "Improve storytelling: use STAR method (Situation, Task, Action, Result) to explain past experiences effectively.")
	}

	if len(tips) < 2 {
		if req.TechnicalScore > 0 {
			tips = append(tips, "Continue practicing coding problems and system design concepts to strengthen technical foundation.")
		}
		tips = append(tips, "Stay updated with industry trends, read technical blogs, and contribute to open source projects.")
	}

	return tips
}

func roleTip(role string) string {
	lower := strings.ToLower(role)
	switch {
	case strings.Contains(lower, "python"):
		return "Strengthen Python fundamentals: list comprehensions, decorators, generators, and async/await patterns."
	case strings.Contains(lower, "javascript"), strings.Contains(lower, "react"):
		return "Deepen knowledge of JavaScript closures, async/await, promises, and React hooks lifecycle."
	case strings.Contains(lower, "java"):
		return "Master Java concepts: generics, exception handling, multithreading, and Spring framework basics."
	case strings.Contains(lower, "full stack"), strings.Contains(lower, "developer"):
		return "Study both frontend (HTML/CSS/JS) and backend fundamentals (APIs, databases, authentication)."
	default:
		return fmt.Sprintf("Study core concepts and best practices specific to %s role.", role)
	}
}
