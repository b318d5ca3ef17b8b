package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetflow/internal/budget"
	"github.com/theirongolddev/budgetflow/internal/cli"
	"github.com/theirongolddev/budgetflow/internal/model"
	"github.com/theirongolddev/budgetflow/internal/pipeline"
	"github.com/theirongolddev/budgetflow/internal/tui"
)

// newCategoryMax is the slider ceiling of a category added without --max.
const newCategoryMax = 1000

var (
	flagCatAll         bool
	flagCatType        string
	flagCatDesc        string
	flagCatCurrent     string
	flagCatMax         string
	flagCatIcon        string
	flagCatInteractive bool
	flagCatOn          bool
	flagCatOff         bool
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "List and edit categories of the active scenario",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories (active only unless --all)",
	Args:  cobra.NoArgs,
	RunE:  runCategoryList,
}

var categoryAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a custom category",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCategoryAdd,
}

var categoryEditCmd = &cobra.Command{
	Use:   "edit <id|name>",
	Short: "Edit a category's details",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryEdit,
}

var categorySetCmd = &cobra.Command{
	Use:   "set <id|name>",
	Short: "Set a category's monthly value and optionally its maximum",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategorySet,
}

var categoryDeleteCmd = &cobra.Command{
	Use:     "delete <id|name>",
	Aliases: []string{"rm"},
	Short:   "Delete a custom category or deactivate a predefined one",
	Args:    cobra.ExactArgs(1),
	RunE:    runCategoryDelete,
}

var categoryToggleCmd = &cobra.Command{
	Use:   "toggle <id|name>",
	Short: "Activate or deactivate a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryToggle,
}

var categoryIconsCmd = &cobra.Command{
	Use:   "icons",
	Short: "List the available category icons",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		rows := make([][]string, 0)
		for _, ic := range model.Icons() {
			rows = append(rows, []string{ic.Glyph(), string(ic)})
		}
		fmt.Print(cli.RenderTable(cli.Table{Headers: []string{"", "Icon"}, Rows: rows, Right: []bool{false, false}}))
		return nil
	},
}

func init() {
	categoryListCmd.Flags().BoolVarP(&flagCatAll, "all", "a", false, "Include inactive categories")
	categoryListCmd.Flags().StringVarP(&flagCatType, "type", "t", "", "Only show income or expenditure")

	for _, c := range []*cobra.Command{categoryAddCmd, categoryEditCmd} {
		c.Flags().StringVarP(&flagCatDesc, "description", "d", "", "Description")
		c.Flags().StringVar(&flagCatCurrent, "current", "", "Current monthly value")
		c.Flags().StringVar(&flagCatMax, "max", "", "Maximum value for the slider")
		c.Flags().StringVar(&flagCatIcon, "icon", "", "Icon name (see `category icons`)")
		c.Flags().StringVarP(&flagCatType, "type", "t", "", "income or expenditure")
		c.Flags().BoolVarP(&flagCatInteractive, "interactive", "i", false, "Fill the fields in a form")
	}

	categorySetCmd.Flags().StringVar(&flagCatCurrent, "current", "", "Current monthly value")
	categorySetCmd.Flags().StringVar(&flagCatMax, "max", "", "Maximum value")
	_ = categorySetCmd.MarkFlagRequired("current")

	categoryToggleCmd.Flags().BoolVar(&flagCatOn, "on", false, "Activate")
	categoryToggleCmd.Flags().BoolVar(&flagCatOff, "off", false, "Deactivate")
	categoryToggleCmd.MarkFlagsMutuallyExclusive("on", "off")

	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categoryEditCmd, categorySetCmd,
		categoryDeleteCmd, categoryToggleCmd, categoryIconsCmd)
	rootCmd.AddCommand(categoryCmd)
}

func parseTypeFlag(s string) (model.CategoryType, error) {
	t := model.CategoryType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid type %q (want income or expenditure)", s)
	}
	return t, nil
}

func runCategoryList(cmd *cobra.Command, _ []string) error {
	var only model.CategoryType
	if flagCatType != "" {
		t, err := parseTypeFlag(flagCatType)
		if err != nil {
			return err
		}
		only = t
	}

	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	s, err := activeScenario(ws)
	if err != nil {
		return err
	}

	cats := make([]model.Category, 0, len(s.Categories))
	for _, c := range s.Categories {
		if (flagCatAll || c.IsActive) && (only == "" || c.Type == only) {
			cats = append(cats, c)
		}
	}
	cats = pipeline.SortForDisplay(cats)
	if len(cats) == 0 {
		fmt.Println("  No matching categories.")
		return nil
	}

	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		kind := "custom"
		if c.IsPredefined {
			kind = "predefined"
		}
		t := pipeline.FromMonthly(c.CurrentValue)
		rows = append(rows, []string{
			cli.ShortID(c.ID),
			c.Icon.Glyph() + " " + cli.Truncate(c.Name, 28),
			c.Type.Label(),
			cli.FormatMoneyFloat(t.Weekly),
			cli.FormatMoney(c.CurrentValue),
			cli.FormatMoney(t.Yearly),
			cli.FormatMoney(c.MaxValue),
			cli.FormatActive(c.IsActive),
			kind,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   s.Name,
		Headers: []string{"ID", "Name", "Type", "Weekly", "Monthly", "Yearly", "Max", "Active", "Kind"},
		Rows:    rows,
		Right:   []bool{false, false, false, true, true, true, true, false, false},
	}))
	return nil
}

// categoryFormFromFlags overlays the flags the user set onto base.
func categoryFormFromFlags(cmd *cobra.Command, base budget.CategoryForm) (budget.CategoryForm, error) {
	f := base
	flags := cmd.Flags()
	if flags.Changed("description") {
		f.Description = flagCatDesc
	}
	if flags.Changed("icon") {
		f.Icon = flagCatIcon
	}
	if flags.Changed("type") {
		t, err := parseTypeFlag(flagCatType)
		if err != nil {
			return f, err
		}
		f.Type = t
	}
	if flags.Changed("current") {
		v, err := budget.ParseAmountField("current value", flagCatCurrent)
		if err != nil {
			return f, err
		}
		f.CurrentValue = v
	}
	if flags.Changed("max") {
		v, err := budget.ParseAmountField("max value", flagCatMax)
		if err != nil {
			return f, err
		}
		f.MaxValue = v
	}
	return f, nil
}

// runCategoryForm runs the interactive category form seeded with base.
func runCategoryForm(title string, base budget.CategoryForm) (budget.CategoryForm, error) {
	fields := tui.CategoryFields{
		Name:        base.Name,
		Description: base.Description,
		Current:     model.FormatAmount(model.RoundAmount(base.CurrentValue)),
		Max:         model.FormatAmount(model.RoundAmount(base.MaxValue)),
		Icon:        base.Icon,
		Type:        base.Type,
	}
	if err := tui.NewCategoryForm(title, &fields).Run(); err != nil {
		return budget.CategoryForm{}, err
	}
	return fields.Form()
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	base := budget.CategoryForm{
		MaxValue: newCategoryMax,
		Icon:     string(model.DefaultIcon),
		Type:     model.Expenditure,
	}
	if len(args) == 1 {
		base.Name = args[0]
	}
	f, err := categoryFormFromFlags(cmd, base)
	if err != nil {
		return err
	}
	if flagCatInteractive {
		if f, err = runCategoryForm("New category", f); err != nil {
			if aborted(err) {
				return nil
			}
			return err
		}
	} else if strings.TrimSpace(f.Name) == "" {
		return errors.New("a name is required (or use -i)")
	}

	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	c, err := ws.AddCategory(cmd.Context(), f)
	if err != nil {
		return err
	}
	infof("  Added %s %s (%s) at %s/month\n", c.Icon.Glyph(), c.Name, cli.ShortID(c.ID), cli.FormatMoney(c.CurrentValue))
	return nil
}

func runCategoryEdit(cmd *cobra.Command, args []string) error {
	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	s, err := activeScenario(ws)
	if err != nil {
		return err
	}
	orig, err := budget.FindCategory(s, args[0])
	if err != nil {
		return fmt.Errorf("%q: %w", args[0], err)
	}

	f, err := categoryFormFromFlags(cmd, budget.FormFromCategory(orig))
	if err != nil {
		return err
	}
	if flagCatInteractive {
		if f, err = runCategoryForm("Edit "+orig.Name, f); err != nil {
			if aborted(err) {
				return nil
			}
			return err
		}
	}

	c, err := ws.EditCategory(cmd.Context(), orig.ID, f)
	if err != nil {
		return err
	}
	if c.ID != orig.ID {
		infof("  %s is predefined: deactivated it and added %s (%s)\n", orig.Name, c.Name, cli.ShortID(c.ID))
		return nil
	}
	infof("  Updated %s %s\n", c.Icon.Glyph(), c.Name)
	return nil
}

func runCategorySet(cmd *cobra.Command, args []string) error {
	cur, err := budget.ParseAmountField("current value", flagCatCurrent)
	if err != nil {
		return err
	}

	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	s, err := activeScenario(ws)
	if err != nil {
		return err
	}
	c, err := budget.FindCategory(s, args[0])
	if err != nil {
		return fmt.Errorf("%q: %w", args[0], err)
	}

	maxValue := c.MaxValue
	if cmd.Flags().Changed("max") {
		m, err := budget.ParseAmountField("max value", flagCatMax)
		if err != nil {
			return err
		}
		maxValue = model.RoundAmount(m)
	}

	want := model.RoundAmount(cur)
	c, err = ws.UpdateValues(cmd.Context(), c.ID, want, maxValue)
	if err != nil {
		return err
	}
	if c.CurrentValue != want {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("Value capped at the maximum of %s", cli.FormatMoney(c.MaxValue))))
	}
	infof("  %s: %s of %s\n", c.Name, cli.FormatMoney(c.CurrentValue), cli.FormatMoney(c.MaxValue))
	return nil
}

func runCategoryDelete(cmd *cobra.Command, args []string) error {
	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	s, err := activeScenario(ws)
	if err != nil {
		return err
	}
	c, err := budget.FindCategory(s, args[0])
	if err != nil {
		return fmt.Errorf("%q: %w", args[0], err)
	}

	removed, err := ws.DeleteCategory(cmd.Context(), c.ID)
	if err != nil {
		return err
	}
	if removed {
		infof("  Deleted %s\n", c.Name)
	} else {
		infof("  %s is predefined: deactivated instead\n", c.Name)
	}
	return nil
}

func runCategoryToggle(cmd *cobra.Command, args []string) error {
	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	s, err := activeScenario(ws)
	if err != nil {
		return err
	}
	c, err := budget.FindCategory(s, args[0])
	if err != nil {
		return fmt.Errorf("%q: %w", args[0], err)
	}

	active := !c.IsActive
	switch {
	case flagCatOn:
		active = true
	case flagCatOff:
		active = false
	}

	c, err = ws.ToggleActive(cmd.Context(), c.ID, active)
	if err != nil {
		return err
	}
	if c.IsActive {
		infof("  Activated %s\n", c.Name)
	} else {
		infof("  Deactivated %s\n", c.Name)
	}
	return nil
}

// aborted reports whether err is a cancelled form, telling the user so.
func aborted(err error) bool {
	if errors.Is(err, huh.ErrUserAborted) {
		infof("  Cancelled.\n")
		return true
	}
	return false
}
