package app

import "folio/api/internal/store"

// defaultPortfolio is the document seeded into an empty store.
func defaultPortfolio() store.Portfolio {
	return store.Portfolio{
		Password: "vinayakumar073",
		StudentDetails: store.StudentDetails{
			Name:     "Vinaya Kumar",
			Location: "Odisha, India",
			Email:    "vinayakumar464@gmail.com",
			Phone:    "+91-77500 28053",
		},
		TypingTexts: []string{
			"I am a Data Science Enthusiast.",
			"I am a Data Analyst.",
			"I am a Machine Learning Learner.",
			"I am a Developer.",
		},
		Summary: "Data Science enthusiast skilled in Python, MySQL, NLP, and machine learning, " +
			"with experience in data cleaning, exploratory data analysis, and building predictive models. " +
			"Proficient in Pandas, NumPy, Scikit-learn, and visualization tools. Worked on real-world NLP " +
			"and analytics projects, including sentiment analysis and classification systems. Strong " +
			"communication, problem-solving, and collaboration skills, with a passion for using data to " +
			"drive practical business decisions.",
		Academics: []store.Academic{
			{
				ID:             "1",
				Degree:         "Bachelor of Technology (Computer Science and Engineering)",
				Institute:      "Gandhi Institute of Engineering and Technology, Gunupur, Odisha",
				GraduationDate: "July 2026",
			},
		},
		Skills: store.SkillSet{
			Technical: []string{
				"Python",
				"C",
				"Java",
				"Streamlit",
				"MySQL",
				"TensorFlow (Keras)",
				"Scikit-learn",
				"Image Processing",
				"Data Preprocessing",
				"NLP",
			},
			Interests: []string{
				"Data Analysis",
				"Data Science",
				"Machine Learning",
				"Deep Learning",
			},
			Soft: []string{"Attention to Detail", "Time Management", "Teamwork", "Adaptability"},
		},
		Certifications: []store.Certification{
			{ID: "1", Name: "Data Analysis Intern", Issuer: "Millennium Software Solutions"},
			{ID: "2", Name: "Data Science Professional", Issuer: "Oracle University"},
			{ID: "3", Name: "Data Analysis with Python", Issuer: "IBM"},
			{ID: "4", Name: "Foundation of AI and ML", Issuer: "Microsoft"},
			{ID: "5", Name: "Quantitative Research", Issuer: "JPMorgan Chase & Co."},
		},
		InternshipProjects: []store.Project{
			{
				ID:       "1",
				Title:    "Email and SMS Spam Detection",
				Category: "Internship Project",
				Description: "Built high-efficiency NLP preprocessing pipelines using TF-IDF and Count " +
					"Vectorizer, improving data cleaning speed and enabling processing of 1M+ email and SMS " +
					"messages. Developed Naive Bayes and Logistic Regression models achieving around 92% " +
					"accuracy and reducing false positives.",
			},
			{
				ID:       "2",
				Title:    "Emotion Recognition using Facial Expression",
				Category: "Internship Project",
				Description: "Designed and fine-tuned a CNN model detecting six facial emotions with ~92% " +
					"accuracy using augmented datasets to improve robustness. Integrated with OpenCV for " +
					"real-time webcam-based detection.",
			},
			{
				ID:       "3",
				Title:    "Intelligent Customer Sentiment Analysis",
				Category: "Internship Project",
				Description: "Developed a DistilBERT-based sentiment analysis pipeline, boosting " +
					"classification accuracy by ~15%. Built an interactive sentiment dashboard to cut false " +
					"positives and reduce interpretation time.",
			},
		},
		PersonalProjects: []store.Project{},
		Internships: []store.Internship{
			{
				ID:       "1",
				Company:  "Millennium Software Solutions, Visakhapatnam",
				Role:     "Data Analytics Intern",
				Duration: "Apr 2024 – Aug 2025",
				Bullets: []string{
					"Optimized and transformed datasets exceeding 1M records, increasing data reliability and accelerating analysis workflows.",
					"Developed high-accuracy ML models and interactive dashboards, improving predictive performance and stakeholder engagement, contributing to operational efficiency.",
				},
			},
			{
				ID:       "2",
				Company:  "Naresh I Technology, Hyderabad",
				Role:     "Python Data Science Intern",
				Duration: "May 2025 – Jul 2025",
				Bullets: []string{
					"Processed and refined 50,000+ text samples, reducing dataset noise and boosting training accuracy.",
					"Built ML models with high precision for spam detection and created visual reports to improve team decision-making.",
				},
			},
		},
	}
}
