package generator

// courseSchema is the response schema sent with every generation request. The
// API rejects output that does not conform, which keeps parsing on our side to
// a single json.Unmarshal into CourseDocument.
func courseSchema() map[string]any {
	questionSchema := map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"id":     map[string]any{"type": "STRING"},
			"prompt": map[string]any{"type": "STRING"},
			"type":   map[string]any{"type": "STRING"},
			"options": map[string]any{
				"type":  "ARRAY",
				"items": map[string]any{"type": "STRING"},
			},
			"correct_answer_index": map[string]any{"type": "INTEGER"},
			"explanation":          map[string]any{"type": "STRING"},
		},
		"required": []string{"id", "prompt", "type", "options", "correct_answer_index", "explanation"},
	}

	chapterSchema := map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"index": map[string]any{"type": "INTEGER"},
			"title": map[string]any{"type": "STRING"},
			"summary": map[string]any{
				"type":        "STRING",
				"description": "A summary of the chapter, 40 words or less.",
			},
			"estimated_minutes": map[string]any{"type": "INTEGER"},
			"youtube_url":       map[string]any{"type": "STRING", "nullable": true},
			"content_text": map[string]any{
				"type":        "STRING",
				"description": "The main text content of the chapter.",
			},
			"quiz": map[string]any{
				"type":     "OBJECT",
				"nullable": true,
				"properties": map[string]any{
					"questions": map[string]any{
						"type":  "ARRAY",
						"items": questionSchema,
					},
				},
				"required": []string{"questions"},
			},
			"resources": map[string]any{
				"type": "ARRAY",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"type":  map[string]any{"type": "STRING"},
						"title": map[string]any{"type": "STRING"},
						"url":   map[string]any{"type": "STRING"},
					},
					"required": []string{"type", "title", "url"},
				},
			},
		},
		"required": []string{"index", "title", "summary", "estimated_minutes", "youtube_url", "content_text", "resources"},
	}

	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"courseId": map[string]any{
				"type":        "STRING",
				"description": "A slug-safe, lowercase, hyphen-separated ID for the course.",
			},
			"title": map[string]any{
				"type":        "STRING",
				"description": "The course title, 12 words or less.",
			},
			"subtitle": map[string]any{
				"type":        "STRING",
				"description": "A short, one-liner subtitle, 20 words or less.",
			},
			"category":                map[string]any{"type": "STRING"},
			"level":                   map[string]any{"type": "STRING"},
			"duration_weeks":          map[string]any{"type": "INTEGER"},
			"estimated_total_minutes": map[string]any{"type": "INTEGER"},
			"image_required_before_save": map[string]any{
				"type":        "BOOLEAN",
				"description": "Should always be true.",
			},
			"description": map[string]any{
				"type":        "STRING",
				"description": "The course description.",
			},
			"learning_outcomes": map[string]any{
				"type":  "ARRAY",
				"items": map[string]any{"type": "STRING"},
			},
			"chapters": map[string]any{
				"type":  "ARRAY",
				"items": chapterSchema,
			},
			"meta": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"created_by_model_version": map[string]any{"type": "STRING"},
					"prompt_used":              map[string]any{"type": "STRING"},
					"constraints":              map[string]any{"type": "STRING"},
				},
				"required": []string{"created_by_model_version", "prompt_used", "constraints"},
			},
		},
		"required": []string{
			"courseId", "title", "subtitle", "category", "level",
			"duration_weeks", "estimated_total_minutes", "image_required_before_save",
			"description", "learning_outcomes", "chapters", "meta",
		},
	}
}
