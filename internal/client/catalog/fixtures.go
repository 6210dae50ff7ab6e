package catalog

import (
	"time"

	"github.com/icfoundry/icvault/internal/models"
)

// Fixture returns the compiled-in demo catalog. In a full product items
// would be created by the user and fetched from the backend; that
// persistence is out of scope, so the catalog ships with fixture data.
func Fixture() *Catalog {
	return New(fixtureItems(), fixtureSpaces())
}

func fixtureSpaces() []models.Space {
	return []models.Space{
		{ID: "personal", Name: "Personal", Icon: "user", Color: "from-[#F15A24] to-[#FBB03B]"},
		{ID: "work", Name: "Work", Icon: "briefcase", Color: "from-[#522785] to-[#29ABE2]"},
		{ID: "family", Name: "Family", Icon: "home", Color: "from-[#ED1E79] to-[#FBB03B]"},
	}
}

func fixtureItems() []models.VaultItem {
	at := func(value string) time.Time {
		t, err := time.Parse("2006-01-02T15:04:05", value)
		if err != nil {
			panic("catalog: bad fixture timestamp: " + value)
		}
		return t
	}

	return []models.VaultItem{
		{
			ID: "1", Title: "Gmail", Type: models.TypeLogin, SpaceID: "personal",
			IsFavorite: true,
			LastUsed:   at("2025-07-18T10:30:00"), CreatedAt: at("2025-07-01T09:00:00"), UpdatedAt: at("2025-07-18T10:30:00"),
			Data: models.LoginData{
				Username: "user@gmail.com",
				Password: "SecurePass123!",
				URL:      "https://gmail.com",
				Notes:    "Main email account",
			},
		},
		{
			ID: "2", Title: "GitHub", Type: models.TypeLogin, SpaceID: "work",
			IsFavorite: true,
			LastUsed:   at("2025-07-17T16:45:00"), CreatedAt: at("2025-07-02T14:20:00"), UpdatedAt: at("2025-07-17T16:45:00"),
			Data: models.LoginData{
				Username: "dev_user",
				Password: "GitH@b2025Secure",
				URL:      "https://github.com",
				Notes:    "Development account with 2FA enabled",
				CustomFields: []models.CustomField{
					{ID: "cf-1", Label: "Recovery code", Value: "a1b2-c3d4-e5f6", Type: models.FieldPassword},
				},
			},
		},
		{
			ID: "3", Title: "Netflix", Type: models.TypeLogin, SpaceID: "family",
			LastUsed: at("2025-07-16T20:15:00"), CreatedAt: at("2025-07-03T11:30:00"), UpdatedAt: at("2025-07-16T20:15:00"),
			Data: models.LoginData{
				Username: "family@email.com",
				Password: "NetFlix2025!",
				URL:      "https://netflix.com",
				Notes:    "Family premium subscription",
			},
		},
		{
			ID: "4", Title: "Main Credit Card", Type: models.TypeCard, SpaceID: "personal",
			LastUsed: at("2025-07-15T14:22:00"), CreatedAt: at("2025-07-04T10:15:00"), UpdatedAt: at("2025-07-15T14:22:00"),
			Data: models.CardData{
				CardholderName: "John Doe",
				Number:         "**** **** **** 1234",
				ExpiryMonth:    "12",
				ExpiryYear:     "2027",
				CVV:            "***",
				Notes:          "Primary credit card for online purchases",
			},
		},
		{
			ID: "5", Title: "Slack Workspace", Type: models.TypeLogin, SpaceID: "work",
			LastUsed: at("2025-07-14T09:10:00"), CreatedAt: at("2025-07-05T13:45:00"), UpdatedAt: at("2025-07-14T09:10:00"),
			Data: models.LoginData{
				Username: "john.doe@company.com",
				Password: "Sl@ck2025Work",
				URL:      "https://company.slack.com",
				Notes:    "Team communication platform",
			},
		},
		{
			ID: "6", Title: "API Keys & Tokens", Type: models.TypeNote, SpaceID: "work",
			IsFavorite: true,
			LastUsed:   at("2025-07-13T15:30:00"), CreatedAt: at("2025-07-06T16:20:00"), UpdatedAt: at("2025-07-13T15:30:00"),
			Data: models.NoteData{
				Content: "Development API keys for the staging environment.\nRotate quarterly; production keys live in the ops vault.",
			},
		},
		{
			ID: "7", Title: "Amazon Prime", Type: models.TypeLogin, SpaceID: "personal",
			LastUsed: at("2025-07-12T18:45:00"), CreatedAt: at("2025-07-07T12:10:00"), UpdatedAt: at("2025-07-12T18:45:00"),
			Data: models.LoginData{
				Username: "prime.user@email.com",
				Password: "Am@zon2025Prime",
				URL:      "https://amazon.com",
				Notes:    "Prime subscription with free shipping",
			},
		},
		{
			ID: "8", Title: "Family Banking", Type: models.TypeLogin, SpaceID: "family",
			LastUsed: at("2025-07-11T11:20:00"), CreatedAt: at("2025-07-08T11:20:00"), UpdatedAt: at("2025-07-11T11:20:00"),
			Data: models.LoginData{
				Username: "family.savings",
				Password: "B@nk1ng2025Safe",
				URL:      "https://bank.com",
				Notes:    "Joint savings account",
			},
		},
		{
			ID: "9", Title: "Social Media Notes", Type: models.TypeNote, SpaceID: "personal",
			LastUsed: at("2025-07-10T13:15:00"), CreatedAt: at("2025-07-09T14:30:00"), UpdatedAt: at("2025-07-10T13:15:00"),
			Data: models.NoteData{
				Content: "Social media strategy: post 3x per week at 9AM, 1PM, 7PM.\nGrow followers by 20% this quarter.",
			},
		},
		{
			ID: "10", Title: "Business Credit Card", Type: models.TypeCard, SpaceID: "work",
			LastUsed: at("2025-07-09T16:40:00"), CreatedAt: at("2025-07-10T09:25:00"), UpdatedAt: at("2025-07-09T16:40:00"),
			Data: models.CardData{
				CardholderName: "Company LLC",
				Number:         "**** **** **** 5678",
				ExpiryMonth:    "08",
				ExpiryYear:     "2027",
				CVV:            "***",
				Notes:          "Business expenses and software subscriptions",
			},
		},
		{
			ID: "11", Title: "Passport", Type: models.TypeIdentity, SpaceID: "personal",
			LastUsed: at("2025-07-08T08:05:00"), CreatedAt: at("2025-07-11T10:00:00"), UpdatedAt: at("2025-07-08T08:05:00"),
			Data: models.IdentityData{
				Name:    "John Doe",
				Email:   "john.doe@email.com",
				Phone:   "+1 555 0100",
				Address: "42 Harbor St, Springfield",
			},
		},
	}
}
