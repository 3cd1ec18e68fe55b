package normalize

import "github.com/jonathan/resu/internal/schemas"

var seniorityValues = []string{
	"intern", "junior", "mid", "senior", "staff", "principal", "lead", "manager", "director", "unknown",
}

var toneValues = []string{"formal", "professional", "conversational"}

// JobDescriptionShape is the table for types.ParsedJobDescription
var JobDescriptionShape = &Shape{
	Name:     "parsedJobDescription",
	Schema:   schemas.JobDescription,
	Wrappers: []string{"parsedJobDescription", "parsedJD", "jobDescription", "result", "data"},
	Fields: []Field{
		{Name: "companyName", Aliases: []string{"company_name", "company"}, Kind: KindString, Required: true},
		{Name: "roleTitle", Aliases: []string{"role_title", "jobTitle", "job_title", "title"}, Kind: KindString, Required: true},
		{Name: "seniorityLevel", Aliases: []string{"seniority_level", "seniority", "level"}, Kind: KindEnum, Enum: seniorityValues, Default: "unknown"},
		{Name: "requiredSkills", Aliases: []string{"required_skills"}, Kind: KindStringList},
		{Name: "preferredSkills", Aliases: []string{"preferred_skills"}, Kind: KindStringList},
		{Name: "keywords", Aliases: []string{"keyWords", "key_words"}, Kind: KindStringList},
		{Name: "responsibilities", Kind: KindStringList},
		{Name: "qualifications", Kind: KindStringList},
		{Name: "niceToHaves", Aliases: []string{"nice_to_haves", "niceToHave", "nice_to_have"}, Kind: KindStringList},
		{Name: "industryDomain", Aliases: []string{"industry_domain", "industry"}, Kind: KindNullableString},
		{Name: "teamSize", Aliases: []string{"team_size"}, Kind: KindNullableString},
		{Name: "techStack", Aliases: []string{"tech_stack", "technologies"}, Kind: KindStringList},
	},
}

var selectedBulletShape = &Shape{
	Name: "selectedBullet",
	Fields: []Field{
		{Name: "experienceId", Aliases: []string{"experience_id"}, Kind: KindString, Inherit: "experienceId"},
		{Name: "bulletIndex", Aliases: []string{"bullet_index", "index"}, Kind: KindNumber, Default: 0.0},
		{Name: "originalText", Aliases: []string{"original_text", "text"}, Kind: KindString},
		{Name: "relevanceScore", Aliases: []string{"relevance_score", "score"}, Kind: KindNumber, Default: 50.0},
		{Name: "matchedKeywords", Aliases: []string{"matched_keywords", "keywords"}, Kind: KindStringList},
	},
}

var selectedExperienceShape = &Shape{
	Name: "selectedExperience",
	Fields: []Field{
		{Name: "experienceId", Aliases: []string{"experience_id", "id"}, Kind: KindString},
		{Name: "include", Kind: KindBool, Default: true},
		{Name: "selectedBullets", Aliases: []string{"selected_bullets", "bullets"}, Kind: KindObjectList, Shape: selectedBulletShape},
	},
}

// RelevanceSelectionShape is the table for types.RelevanceSelection
var RelevanceSelectionShape = &Shape{
	Name:     "relevanceSelection",
	Schema:   schemas.RelevanceSelection,
	Wrappers: []string{"relevanceSelection", "selection", "result", "data"},
	Fields: []Field{
		{Name: "proposedSummary", Aliases: []string{"proposed_summary", "summary"}, Kind: KindString},
		{Name: "selectedExperiences", Aliases: []string{"selected_experiences", "experiences"}, Kind: KindObjectList, Shape: selectedExperienceShape},
		{Name: "selectedSkills", Aliases: []string{"selected_skills", "skills"}, Kind: KindStringList, ItemKeys: []string{"name", "id", "title"}},
		{Name: "selectedProjects", Aliases: []string{"selected_projects", "projects"}, Kind: KindStringList, ItemKeys: []string{"id", "name", "title"}},
		{Name: "selectedCertifications", Aliases: []string{"selected_certifications", "certifications"}, Kind: KindStringList, ItemKeys: []string{"id", "name", "title"}},
		{Name: "overallMatchScore", Aliases: []string{"overall_match_score", "matchScore", "match_score"}, Kind: KindNumber, Default: 50.0},
	},
}

var contactShape = &Shape{
	Name: "contact",
	Fields: []Field{
		{Name: "name", Aliases: []string{"fullName", "full_name"}, Kind: KindString, Required: true},
		{Name: "email", Aliases: []string{"emailAddress", "email_address"}, Kind: KindString, Required: true},
		{Name: "phone", Aliases: []string{"phoneNumber", "phone_number"}, Kind: KindOptionalString},
		{Name: "location", Kind: KindOptionalString},
		{Name: "linkedin", Aliases: []string{"linkedIn", "linkedin_url"}, Kind: KindOptionalString},
		{Name: "github", Aliases: []string{"gitHub", "github_url"}, Kind: KindOptionalString},
		{Name: "website", Aliases: []string{"url", "portfolio"}, Kind: KindOptionalString},
	},
}

var resumeExperienceShape = &Shape{
	Name: "experience",
	Fields: []Field{
		{Name: "title", Aliases: []string{"role", "position"}, Kind: KindString},
		{Name: "company", Aliases: []string{"organization"}, Kind: KindString},
		{Name: "location", Kind: KindOptionalString},
		{Name: "startDate", Aliases: []string{"start_date", "from"}, Kind: KindString},
		{Name: "endDate", Aliases: []string{"end_date", "to"}, Kind: KindOptionalString},
		{Name: "bullets", Aliases: []string{"achievements"}, Kind: KindStringList, ItemKeys: []string{"text", "bullet"}},
	},
}

var resumeEducationShape = &Shape{
	Name: "education",
	Fields: []Field{
		{Name: "institution", Aliases: []string{"school", "university"}, Kind: KindString},
		{Name: "degree", Kind: KindString},
		{Name: "field", Aliases: []string{"major", "fieldOfStudy", "field_of_study"}, Kind: KindString},
		{Name: "startDate", Aliases: []string{"start_date"}, Kind: KindString},
		{Name: "endDate", Aliases: []string{"end_date"}, Kind: KindOptionalString},
		{Name: "gpa", Aliases: []string{"GPA"}, Kind: KindOptionalString},
		{Name: "highlights", Kind: KindStringList},
	},
}

var skillCategoryShape = &Shape{
	Name: "skillCategory",
	Fields: []Field{
		{Name: "name", Aliases: []string{"category"}, Kind: KindString, Default: "Other"},
		{Name: "skills", Aliases: []string{"items"}, Kind: KindStringList, ItemKeys: []string{"name", "skill", "text"}},
	},
}

var resumeProjectShape = &Shape{
	Name: "project",
	Fields: []Field{
		{Name: "name", Aliases: []string{"title"}, Kind: KindString},
		{Name: "description", Kind: KindString},
		{Name: "url", Aliases: []string{"link"}, Kind: KindOptionalString},
		{Name: "highlights", Aliases: []string{"achievements"}, Kind: KindStringList},
	},
}

var resumeCertificationShape = &Shape{
	Name: "certification",
	Fields: []Field{
		{Name: "name", Aliases: []string{"title"}, Kind: KindString},
		{Name: "issuer", Aliases: []string{"organization", "issuedBy"}, Kind: KindString},
		{Name: "date", Aliases: []string{"issuedDate", "issued_date"}, Kind: KindString},
	},
}

// ResumeDataShape is the table for types.ResumeData
var ResumeDataShape = &Shape{
	Name:     "resumeData",
	Schema:   schemas.ResumeData,
	Wrappers: []string{"resumeData", "resume", "result", "data"},
	Fields: []Field{
		{Name: "contact", Aliases: []string{"contactInfo", "contact_info"}, Kind: KindObject, Shape: contactShape},
		{Name: "summary", Aliases: []string{"professionalSummary", "professional_summary", "objective"}, Kind: KindString},
		{Name: "experience", Aliases: []string{"workExperience", "work_experience"}, Kind: KindObjectList, Shape: resumeExperienceShape},
		{Name: "education", Kind: KindObjectList, Shape: resumeEducationShape},
		{Name: "skills", Aliases: []string{"technicalSkills", "technical_skills"}, Kind: KindSkills, Shape: skillCategoryShape},
		{Name: "projects", Kind: KindObjectList, Shape: resumeProjectShape},
		{Name: "certifications", Kind: KindObjectList, Shape: resumeCertificationShape},
	},
}

// CoverLetterShape is the table for types.CoverLetterData
var CoverLetterShape = &Shape{
	Name:     "coverLetter",
	Schema:   schemas.CoverLetter,
	Wrappers: []string{"coverLetter", "cover_letter", "letter", "result", "data"},
	Fields: []Field{
		{Name: "opening", Aliases: []string{"openingParagraph", "opening_paragraph", "introduction"}, Kind: KindString, Required: true},
		{Name: "bodyParagraphs", Aliases: []string{"body_paragraphs", "paragraphs", "body"}, Kind: KindStringList},
		{Name: "closing", Aliases: []string{"closingParagraph", "closing_paragraph", "conclusion"}, Kind: KindString, Required: true},
		{Name: "tone", Kind: KindEnum, Enum: toneValues, Default: "professional"},
	},
}
