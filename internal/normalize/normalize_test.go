package normalize

import (
	"errors"
	"testing"

	"github.com/jonathan/resu/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resumeJSON = `{
	"contact": {"name": "Ada Lovelace", "email": "ada@example.com", "linkedin": "in/ada"},
	"summary": "Engineer who ships.",
	"experience": [
		{
			"title": "Staff Engineer",
			"company": "Analytical Engines",
			"startDate": "2020-01",
			"bullets": ["Designed the difference engine", "Led a team of 4"]
		}
	],
	"education": [{"institution": "University of London", "degree": "BSc", "field": "Mathematics", "startDate": "1830"}],
	"skills": {"categories": [{"name": "Languages", "skills": ["Go", "SQL"]}, {"name": "Cloud", "skills": ["GCP"]}]},
	"projects": [],
	"certifications": []
}`

func decodeText(t *testing.T, text string) any {
	t.Helper()
	v, err := Decode(text)
	require.NoError(t, err)
	return v
}

func TestResumeData_Valid(t *testing.T) {
	resume, err := ResumeData(decodeText(t, resumeJSON))
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", resume.Contact.Name)
	assert.Equal(t, "in/ada", resume.Contact.LinkedIn)
	assert.Empty(t, resume.Contact.Phone)
	require.Len(t, resume.Experience, 1)
	assert.Equal(t, "", resume.Experience[0].EndDate)
	assert.Equal(t, []string{"Designed the difference engine", "Led a team of 4"}, resume.Experience[0].Bullets)
	require.Len(t, resume.Skills.Categories, 2)
	assert.Equal(t, "Languages", resume.Skills.Categories[0].Name)
	assert.Equal(t, "Cloud", resume.Skills.Categories[1].Name)
	assert.Equal(t, []string{}, resume.Education[0].Highlights)
}

func TestResumeData_WrappedMatchesUnwrapped(t *testing.T) {
	inner, err := ResumeData(decodeText(t, resumeJSON))
	require.NoError(t, err)

	for _, wrapper := range []string{
		`{"result": {"resumeData": ` + resumeJSON + `}}`,
		`{"resumeData": ` + resumeJSON + `}`,
		`{"resume": ` + resumeJSON + `}`,
		"```json\n{\"data\": " + resumeJSON + "}\n```",
	} {
		wrapped, err := ResumeData(decodeText(t, wrapper))
		require.NoError(t, err)
		assert.Equal(t, inner, wrapped)
	}
}

func TestResumeData_Aliases(t *testing.T) {
	input := `{
		"contact": {"name": "Ada", "email": "ada@example.com", "phone": ""},
		"professional_summary": "Builder.",
		"workExperience": [
			{
				"role": "Engineer",
				"organization": "Acme",
				"start_date": "2019",
				"to": "2021",
				"bullets": [{"text": "Shipped v1"}, {"bullet": "Cut costs 20%"}]
			},
			{"position": "Intern", "company": "Globex", "from": "2018", "achievements": ["Wrote tests"]}
		],
		"education": [{"school": "MIT", "degree": "BS", "major": "CS", "start_date": "2014", "GPA": 3.9}],
		"technical_skills": {"Languages": ["Go"], "Databases": ["PostgreSQL"]},
		"projects": {"title": "resu", "description": "Tailors résumés", "link": "https://example.com", "achievements": ["Open source"]},
		"certifications": [{"title": "CKA", "issuedBy": "CNCF", "issued_date": "2022"}]
	}`

	resume, err := ResumeData(decodeText(t, input))
	require.NoError(t, err)

	assert.Empty(t, resume.Contact.Phone, "empty optional strings are dropped")
	assert.Equal(t, "Builder.", resume.Summary)
	require.Len(t, resume.Experience, 2)
	assert.Equal(t, types.ResumeExperience{
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: "2019",
		EndDate:   "2021",
		Bullets:   []string{"Shipped v1", "Cut costs 20%"},
	}, resume.Experience[0])
	assert.Equal(t, []string{"Wrote tests"}, resume.Experience[1].Bullets)
	assert.Equal(t, "MIT", resume.Education[0].Institution)
	assert.Equal(t, "CS", resume.Education[0].Field)
	assert.Equal(t, "3.9", resume.Education[0].GPA)
	assert.Equal(t, []types.SkillCategory{
		{Name: "Languages", Skills: []string{"Go"}},
		{Name: "Databases", Skills: []string{"PostgreSQL"}},
	}, resume.Skills.Categories)
	require.Len(t, resume.Projects, 1, "a lone project object is wrapped in a list")
	assert.Equal(t, "https://example.com", resume.Projects[0].URL)
	assert.Equal(t, []string{"Open source"}, resume.Projects[0].Highlights)
	assert.Equal(t, types.ResumeCertification{Name: "CKA", Issuer: "CNCF", Date: "2022"}, resume.Certifications[0])
}

func TestResumeData_MissingContactEmail(t *testing.T) {
	_, err := ResumeData(decodeText(t, `{"contact": {"name": "Ada"}, "summary": "x"}`))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "resumeData", verr.Shape)
	assert.Equal(t, "contact.email", verr.Path)
}

func TestResumeData_WrongTypeReportsPath(t *testing.T) {
	input := `{"contact": {"name": "Ada", "email": "a@b.c"}, "experience": [{"title": "Eng", "bullets": [["nested"]]}]}`

	_, err := ResumeData(decodeText(t, input))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "experience.0.bullets.0", verr.Path)
}

func TestResumeData_NotAnObject(t *testing.T) {
	_, err := ResumeData([]any{"a"})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Message, "expected a JSON object, got array")
}

func TestJobDescription_DefaultsAndFolding(t *testing.T) {
	input := `{
		"company": "Acme",
		"role_title": "Backend Engineer",
		"seniority": "SENIOR",
		"required_skills": ["Go", "SQL"],
		"tech_stack": "Kubernetes",
		"industry": null
	}`

	jd, err := JobDescription(decodeText(t, input))
	require.NoError(t, err)

	assert.Equal(t, "Acme", jd.CompanyName)
	assert.Equal(t, "Backend Engineer", jd.RoleTitle)
	assert.Equal(t, types.SenioritySenior, jd.SeniorityLevel)
	assert.Equal(t, []string{"Go", "SQL"}, jd.RequiredSkills)
	assert.Equal(t, []string{}, jd.PreferredSkills)
	assert.Equal(t, []string{"Kubernetes"}, jd.TechStack)
	assert.Nil(t, jd.IndustryDomain)
	assert.Nil(t, jd.TeamSize)
}

func TestJobDescription_SeniorityDefaultsToUnknown(t *testing.T) {
	jd, err := JobDescription(map[string]any{"companyName": "Acme", "roleTitle": "Engineer", "teamSize": "5-10"})
	require.NoError(t, err)
	assert.Equal(t, types.SeniorityUnknown, jd.SeniorityLevel)
	require.NotNil(t, jd.TeamSize)
	assert.Equal(t, "5-10", *jd.TeamSize)
}

func TestJobDescription_Failures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		path  string
	}{
		{"missing company", `{"roleTitle": "Engineer"}`, "companyName"},
		{"empty role", `{"companyName": "Acme", "roleTitle": ""}`, "roleTitle"},
		{"unknown seniority", `{"companyName": "Acme", "roleTitle": "Eng", "seniorityLevel": "wizard"}`, "seniorityLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := JobDescription(decodeText(t, tt.input))
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.path, verr.Path)
		})
	}
}

func TestRelevanceSelection_Aliases(t *testing.T) {
	input := `{
		"relevanceSelection": {
			"summary": "Go engineer",
			"experiences": [
				{
					"id": "exp-1",
					"bullets": [
						{"index": "2", "text": "Scaled the API", "score": 91, "keywords": ["api"]},
						{"bullet_index": 0, "original_text": "Mentored"}
					]
				},
				{"experience_id": "exp-2", "include": "false", "selected_bullets": []}
			],
			"selected_skills": [{"name": "Go"}, "SQL"],
			"projects": [{"id": "proj-1", "name": "Compiler"}],
			"certifications": [{"title": "CKA"}],
			"matchScore": "78"
		}
	}`

	sel, err := RelevanceSelection(decodeText(t, input))
	require.NoError(t, err)

	assert.Equal(t, "Go engineer", sel.ProposedSummary)
	require.Len(t, sel.SelectedExperiences, 2)

	first := sel.SelectedExperiences[0]
	assert.Equal(t, "exp-1", first.ExperienceID)
	assert.True(t, first.Include, "include defaults to true")
	require.Len(t, first.SelectedBullets, 2)
	assert.Equal(t, types.SelectedBullet{
		ExperienceID:    "exp-1",
		BulletIndex:     2,
		OriginalText:    "Scaled the API",
		RelevanceScore:  91,
		MatchedKeywords: []string{"api"},
	}, first.SelectedBullets[0])
	assert.Equal(t, 50.0, first.SelectedBullets[1].RelevanceScore)
	assert.Equal(t, "exp-1", first.SelectedBullets[1].ExperienceID, "bullet inherits the experience id")

	assert.False(t, sel.SelectedExperiences[1].Include)
	assert.Equal(t, []string{"Go", "SQL"}, sel.SelectedSkills)
	assert.Equal(t, []string{"proj-1"}, sel.SelectedProjects)
	assert.Equal(t, []string{"CKA"}, sel.SelectedCertifications)
	assert.Equal(t, 78.0, sel.OverallMatchScore)
}

func TestRelevanceSelection_Defaults(t *testing.T) {
	sel, err := RelevanceSelection(map[string]any{})
	require.NoError(t, err)

	assert.Equal(t, "", sel.ProposedSummary)
	assert.Equal(t, []types.SelectedExperience{}, sel.SelectedExperiences)
	assert.Equal(t, []string{}, sel.SelectedSkills)
	assert.Equal(t, 50.0, sel.OverallMatchScore)
}

func TestRelevanceSelection_FractionalIndexRejected(t *testing.T) {
	input := `{"selectedExperiences": [{"experienceId": "e", "selectedBullets": [{"bulletIndex": 1.5}]}]}`

	_, err := RelevanceSelection(decodeText(t, input))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "selectedExperiences.0.selectedBullets.0.bulletIndex", verr.Path)
}

func TestCoverLetter(t *testing.T) {
	input := `{"cover_letter": {"opening_paragraph": "Dear Acme,", "paragraphs": "I build.", "closing": "Best", "tone": "Conversational"}}`

	letter, err := CoverLetter(decodeText(t, input))
	require.NoError(t, err)
	assert.Equal(t, types.CoverLetterData{
		Opening:        "Dear Acme,",
		BodyParagraphs: []string{"I build."},
		Closing:        "Best",
		Tone:           types.ToneConversational,
	}, *letter)
}

func TestCoverLetter_BracketedPreamble(t *testing.T) {
	input := `Here is the result [as requested]: {"opening": "Dear Acme,", "body": ["I build."], "closing": "Best"}`

	letter, err := CoverLetter(decodeText(t, input))
	require.NoError(t, err)
	assert.Equal(t, "Dear Acme,", letter.Opening)
	assert.Equal(t, []string{"I build."}, letter.BodyParagraphs)
	assert.Equal(t, "Best", letter.Closing)
}

func TestCoverLetter_ToneDefaultAndRequiredClosing(t *testing.T) {
	letter, err := CoverLetter(map[string]any{"opening": "Hi", "closing": "Bye"})
	require.NoError(t, err)
	assert.Equal(t, types.ToneProfessional, letter.Tone)
	assert.Equal(t, []string{}, letter.BodyParagraphs)

	_, err = CoverLetter(map[string]any{"opening": "Hi"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "closing", verr.Path)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Shape: "coverLetter", Path: "closing", Message: "closing is required"}
	assert.Equal(t, "coverLetter: closing: closing is required", err.Error())

	bare := &ValidationError{Message: "empty response"}
	assert.Equal(t, "normalize: empty response", bare.Error())
}
