package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/givehub/givehub/internal/client/models"
	"github.com/givehub/givehub/internal/client/routing"
)

// guardedRender re-checks authorization against the live session snapshot
// before rendering a privileged view. The check runs on every invocation,
// never once-and-cached, so a logout in another part of the app revokes
// the view immediately.
func (a *App) guardedRender(required routing.Role, render func(ctx context.Context) error, ctx context.Context) error {
	switch routing.Guard(required, a.session.Snapshot()) {
	case routing.RedirectLogin:
		fmt.Println("Please sign in first (try 'login').")
		return nil
	case routing.Deny:
		fmt.Println("Access denied: this view requires the", string(required), "role.")
		return nil
	default:
		return render(ctx)
	}
}

// ownsApprovedCharity reports whether the current user owns an approved
// charity, which routes donors to the charity dashboard.
func (a *App) ownsApprovedCharity(ctx context.Context) bool {
	snap := a.session.Snapshot()
	if snap.User == nil {
		return false
	}
	charities, err := a.api.GetCharities(ctx)
	if err != nil {
		return false
	}
	for _, c := range charities {
		if c.OwnerID == snap.User.ID && c.Approved {
			return true
		}
	}
	return false
}

// Dashboard routes the user to their role's dashboard view.
func (a *App) Dashboard(ctx context.Context) error {
	snap := a.session.Snapshot()
	path := routing.DashboardPath(snap.User, a.ownsApprovedCharity(ctx))

	switch path {
	case routing.PathAdminDashboard:
		return a.guardedRender(routing.RoleAdmin, a.renderAdminDashboard, ctx)
	case routing.PathDonorDashboard:
		return a.guardedRender(routing.RoleDonor, a.renderDonorDashboard, ctx)
	case routing.PathCharityDashboard:
		// Reachable by charity users and by donors who own an approved
		// charity, so the guard here only requires a signed-in user.
		return a.guardedRender(routing.RoleUnknown, a.renderCharityDashboard, ctx)
	case routing.PathLogin:
		fmt.Println("Please sign in first (try 'login').")
		return nil
	default:
		fmt.Println("No dashboard is available for your account.")
		return nil
	}
}

func (a *App) renderAdminDashboard(ctx context.Context) error {
	stats, err := a.api.GetAdminDashboard(ctx)
	if err != nil {
		fmt.Printf("Could not load admin dashboard: %s\n", err)
		return nil
	}
	fmt.Println("--- Admin dashboard ---")
	fmt.Printf("Users: %d  Charities: %d  Donations: %d (%.2f total)\n",
		stats.TotalUsers, stats.TotalCharities, stats.TotalDonations, stats.DonationsAmount)
	return nil
}

func (a *App) renderDonorDashboard(ctx context.Context) error {
	fmt.Println("--- Donor dashboard ---")
	return a.Donations(ctx)
}

func (a *App) renderCharityDashboard(ctx context.Context) error {
	fmt.Println("--- Charity dashboard ---")
	stories, err := a.api.GetStories(ctx)
	if err != nil {
		fmt.Printf("Could not load stories: %s\n", err)
		return nil
	}
	if len(stories) == 0 {
		fmt.Println("No published stories yet.")
		return nil
	}
	for _, s := range stories {
		fmt.Printf("  [%s] %s\n", s.CreatedAt.Format("2006-01-02"), s.Title)
	}
	return nil
}

// Charities lists approved charities.
func (a *App) Charities(ctx context.Context) error {
	charities, err := a.api.GetCharities(ctx)
	if err != nil {
		fmt.Printf("Could not load charities: %s\n", err)
		return nil
	}
	if len(charities) == 0 {
		fmt.Println("No charities found.")
		return nil
	}
	for _, c := range charities {
		fmt.Printf("  %s  %s\n", c.ID, c.Name)
	}
	return nil
}

// Donate walks the donation flow for the selected charity.
func (a *App) Donate(ctx context.Context) error {
	snap := a.session.Snapshot()
	if !snap.Authenticated {
		fmt.Println("Please sign in first (try 'login').")
		return nil
	}

	charityID, err := getSimpleText(a.reader, "Charity ID", os.Stdout)
	if err != nil {
		return err
	}
	amountStr, err := getSimpleText(a.reader, "Amount", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		fmt.Println("Enter a positive number.")
		return nil
	}
	anonAnswer, err := getSimpleText(a.reader, "Donate anonymously? (y/N)", os.Stdout)
	if err != nil {
		return err
	}

	donation, err := a.api.CreateDonation(ctx, models.DonationRequest{
		CharityID: charityID,
		Amount:    amount,
		Anonymous: anonAnswer == "y" || anonAnswer == "Y",
		Reference: uuid.NewString(),
	})
	if err != nil {
		fmt.Printf("Donation failed: %s\n", err)
		return nil
	}
	fmt.Printf("Thank you! Donation %s recorded.\n", donation.ID)
	return nil
}

// Donations prints the signed-in donor's donation history.
func (a *App) Donations(ctx context.Context) error {
	donations, err := a.api.GetDonationHistory(ctx)
	if err != nil {
		fmt.Printf("Could not load donations: %s\n", err)
		return nil
	}
	if len(donations) == 0 {
		fmt.Println("No donations yet.")
		return nil
	}
	var total float64
	for _, d := range donations {
		fmt.Printf("  [%s] %.2f to %s\n", d.CreatedAt.Format("2006-01-02"), d.Amount, d.CharityID)
		total += d.Amount
	}
	fmt.Printf("Total given: %.2f\n", total)
	return nil
}

// Stories lists published beneficiary stories.
func (a *App) Stories(ctx context.Context) error {
	stories, err := a.api.GetStories(ctx)
	if err != nil {
		fmt.Printf("Could not load stories: %s\n", err)
		return nil
	}
	for _, s := range stories {
		fmt.Printf("  %s\n", s.Title)
	}
	return nil
}

// ApplyCharity submits a charity application for review.
func (a *App) ApplyCharity(ctx context.Context) error {
	snap := a.session.Snapshot()
	if !snap.Authenticated {
		fmt.Println("Please sign in first (try 'login').")
		return nil
	}

	name, err := getSimpleText(a.reader, "Charity name", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Describe the charity", os.Stdout)
	if err != nil {
		return err
	}

	_, err = a.api.ApplyCharity(ctx, models.CharityApplication{
		Name:        name,
		Description: description,
		Email:       snap.User.Email,
	})
	if err != nil {
		fmt.Printf("Application failed: %s\n", err)
		return nil
	}
	fmt.Println("Application submitted for review.")
	return nil
}
