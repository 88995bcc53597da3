package ontology

// DefaultEntries returns the built-in skill table.
func DefaultEntries() []Entry {
	return []Entry{
		entry("swift", CategoryProgrammingLanguage, 1.0, "swiftui", "swift 5.x", "swift 4.x", "swift 3.x"),
		entry("ios", CategoryFramework, 0.9, "ios development", "iphone os"),
		entry("swiftui", CategoryFramework, 0.9, "swift ui", "swiftui framework"),
		entry("uikit", CategoryFramework, 0.9, "ui kit", "cocoa touch"),
		entry("cocoa touch", CategoryFramework, 0.8, "cocoatouch"),
		entry("xcode", CategoryDevelopmentTool, 0.8, "xcode 14", "xcode 15", "xcode cloud"),
		entry("fastlane", CategoryDevOps, 0.7, "fast lane", "fast-lane"),
		entry("jenkins", CategoryDevOps, 0.7, "jenkins ci"),
		entry("xctest", CategoryTesting, 0.8, "xc test", "xctestcase"),
		entry("xcuitest", CategoryTesting, 0.8, "xcui test", "ui testing"),
		entry("firebase", CategoryCloud, 0.7, "firebase analytics", "firebase crashlytics"),
		entry("aws", CategoryCloud, 0.7, "amazon web services", "aws iot"),
		entry("azure", CategoryCloud, 0.7, "microsoft azure", "azure iot"),
		entry("oauth", CategorySecurity, 0.8, "oauth 2.0", "oauth2"),
		entry("jwt", CategorySecurity, 0.7, "json web token"),
		entry("mvvm", CategoryArchitecture, 0.8, "model view viewmodel"),
		entry("mvc", CategoryArchitecture, 0.8, "model view controller"),
		entry("viper", CategoryArchitecture, 0.8, "viper architecture"),
		entry("core data", CategoryFramework, 0.8, "coredata", "core data framework"),
		entry("core animation", CategoryFramework, 0.7, "coreanimation"),
		entry("core graphics", CategoryFramework, 0.7, "coregraphics"),
		entry("healthkit", CategoryFramework, 0.7, "health kit"),
		entry("arkit", CategoryFramework, 0.7, "ar kit"),
		entry("mapkit", CategoryFramework, 0.7, "map kit"),
		entry("vision framework", CategoryFramework, 0.7, "vision", "computer vision"),
		entry("coreimage", CategoryFramework, 0.7, "core image"),
		entry("storekit", CategoryFramework, 0.7, "store kit"),
		entry("face id", CategorySecurity, 0.8, "faceid"),
		entry("touch id", CategorySecurity, 0.8, "touchid"),
		entry("keychain", CategorySecurity, 0.7, "keychain services"),
		entry("restful apis", CategoryNetworking, 0.8, "rest api", "rest apis", "restful api"),
		entry("graphql", CategoryNetworking, 0.7, "graph ql"),
		entry("websockets", CategoryNetworking, 0.7, "websocket"),
		entry("mqtt", CategoryNetworking, 0.6, "mqtt protocol"),
		entry("unit testing", CategoryTesting, 0.8, "unit test", "unit tests"),
		entry("integration testing", CategoryTesting, 0.7, "integration test"),
		entry("ui testing", CategoryTesting, 0.7, "ui test", "user interface testing"),
		entry("automated testing", CategoryTesting, 0.7, "automated test", "test automation"),
		entry("tdd", CategoryTesting, 0.8, "test driven development"),
		entry("bdd", CategoryTesting, 0.7, "behavior driven development"),
		entry("ci/cd", CategoryDevOps, 0.8, "ci cd", "continuous integration", "continuous deployment"),
		entry("github actions", CategoryDevOps, 0.7, "github action"),
		entry("bitrise", CategoryDevOps, 0.6, "bitrise ci"),
		entry("app store connect", CategoryDistribution, 0.7, "appstore connect"),
		entry("testflight", CategoryDistribution, 0.7, "test flight"),
		entry("instruments", CategoryDevelopmentTool, 0.6, "xcode instruments"),
		entry("memory management", CategoryPerformance, 0.7, "memory mgmt"),
		entry("performance profiling", CategoryPerformance, 0.6, "performance profile"),
		entry("leak detection", CategoryPerformance, 0.6, "memory leak"),
		entry("accessibility", CategoryAccessibility, 0.8, "a11y"),
		entry("voiceover", CategoryAccessibility, 0.7, "voice over"),
		entry("dynamic type", CategoryAccessibility, 0.7, "dynamic text"),
		entry("wcag", CategoryAccessibility, 0.7, "web content accessibility guidelines"),
		entry("att", CategoryPrivacy, 0.7, "app tracking transparency"),
		entry("idfa", CategoryPrivacy, 0.6, "identifier for advertisers"),
		entry("privacy", CategoryPrivacy, 0.7, "data privacy"),
		entry("compliance", CategoryPrivacy, 0.6, "regulatory compliance"),
		entry("agile", CategoryProjectManagement, 0.8, "agile methodology"),
		entry("scrum", CategoryProjectManagement, 0.8, "scrum methodology"),
		entry("sprint planning", CategoryProjectManagement, 0.7, "sprint plan"),
		entry("backlog grooming", CategoryProjectManagement, 0.6, "backlog refinement"),
		entry("retrospectives", CategoryProjectManagement, 0.6, "retro"),
		entry("firebase analytics", CategoryAnalytics, 0.6, "analytics"),
		entry("crashlytics", CategoryAnalytics, 0.6, "firebase crashlytics"),
		entry("google analytics", CategoryAnalytics, 0.6, "ga"),
		entry("performance monitoring", CategoryAnalytics, 0.6, "performance monitor"),

		entry("leadership", CategoryInterpersonal, 0.7, "team lead", "tech lead", "leading teams"),
		entry("communication", CategoryInterpersonal, 0.6, "communication skills", "stakeholder communication"),
		entry("teamwork", CategoryInterpersonal, 0.6, "team player", "cross-functional teams"),
		entry("collaboration", CategoryInterpersonal, 0.6, "collaborative", "team collaboration"),
		entry("mentoring", CategoryInterpersonal, 0.6, "mentored", "mentorship", "coaching"),
		entry("problem solving", CategoryInterpersonal, 0.6, "problem-solving", "troubleshooting"),
		entry("critical thinking", CategoryInterpersonal, 0.5),
		entry("adaptability", CategoryInterpersonal, 0.5, "adaptable"),
		entry("time management", CategoryInterpersonal, 0.5),
		entry("presentation", CategoryInterpersonal, 0.5, "presentations", "public speaking"),
	}
}

// DefaultSoftSkills returns the built-in soft-skill lexicon.
func DefaultSoftSkills() []string {
	return []string{
		"agile", "scrum", "collaboration", "team", "teamwork", "leadership",
		"communication", "problem solving", "critical thinking", "adaptability",
		"creativity", "time management", "organization", "attention to detail",
		"analytical", "strategic thinking", "mentoring", "coaching",
		"presentation", "sprint planning", "backlog grooming", "retrospectives",
	}
}

func entry(id string, category Category, weight float64, variations ...string) Entry {
	return Entry{ID: id, Variations: variations, Category: string(category), Weight: weight}
}
